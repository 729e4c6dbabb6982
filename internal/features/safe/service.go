// service.go — safe business rules. Amount validation happens here;
// balance/capacity preconditions live with the locks in the repository.
package safe

import (
	"context"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
)

// Store is the persistence contract.
type Store interface {
	Deposit(ctx context.Context, userID string, amount int64) error
	Withdraw(ctx context.Context, userID string, amount int64) error
	Get(ctx context.Context, userID string) (*Safe, error)
}

// Service manages the safe sub-ledger.
type Service struct {
	store Store
}

// NewService creates the safe service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Deposit moves coins from the main balance into the safe.
func (s *Service) Deposit(ctx context.Context, userID string, amount int64) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	return s.store.Deposit(ctx, userID, amount)
}

// Withdraw moves coins from the safe back to the main balance.
func (s *Service) Withdraw(ctx context.Context, userID string, amount int64) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	return s.store.Withdraw(ctx, userID, amount)
}

// Get returns the user's safe state.
func (s *Service) Get(ctx context.Context, userID string) (*Safe, error) {
	return s.store.Get(ctx, userID)
}
