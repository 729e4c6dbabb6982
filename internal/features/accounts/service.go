// service.go — account lifecycle. The service exposes only the read
// path; balance mutations go through the economy primitives, which lock
// the row inside their own transactions.
package accounts

import (
	"context"

	"github.com/pilot2254/contrast-bot-sub000/internal/config"
)

// Store is what the service needs from storage.
type Store interface {
	GetOrCreate(ctx context.Context, userID, displayName string, startingBalance int64) (*Account, error)
}

// Service manages account records.
type Service struct {
	store Store
	cfg   *config.Config
}

// NewService creates the account service.
func NewService(store Store, cfg *config.Config) *Service {
	return &Service{store: store, cfg: cfg}
}

// GetOrCreate materializes the account for a user, creating it lazily on
// first reference. Idempotent; display-name drift is reconciled here.
func (s *Service) GetOrCreate(ctx context.Context, userID, displayName string) (*Account, error) {
	return s.store.GetOrCreate(ctx, userID, displayName, s.cfg.EconomyStartingBalance)
}
