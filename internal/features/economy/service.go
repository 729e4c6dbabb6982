// service.go — economy business rules. Validation happens before any
// storage access; the repository guarantees atomicity of whatever passes.
package economy

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
)

// Store is the storage contract the service works against.
type Store interface {
	Credit(ctx context.Context, userID string, amount int64, txType, description string, relatedUserID *string) error
	Debit(ctx context.Context, userID string, amount int64, txType, description string, relatedUserID *string) error
	Transfer(ctx context.Context, fromUserID, toUserID string, amount int64) error
	History(ctx context.Context, userID string, limit int, typeFilter string) ([]*Transaction, error)
	Leaderboard(ctx context.Context, metric string, limit int) ([]*LeaderboardEntry, error)
}

// Service owns the credit/debit primitives used by every other feature.
type Service struct {
	store Store
}

// NewService creates the economy service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Credit adds coins to an account. Fails closed on non-positive or
// over-ceiling amounts with no state change.
func (s *Service) Credit(ctx context.Context, userID string, amount int64, txType, description string, relatedUserID *string) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	if amount > MaxTransactionAmount {
		return common.ErrAmountTooLarge
	}
	return s.store.Credit(ctx, userID, amount, txType, description, relatedUserID)
}

// Debit removes coins from an account. Requires balance >= amount,
// otherwise returns common.ErrInsufficientFunds with no change.
func (s *Service) Debit(ctx context.Context, userID string, amount int64, txType, description string, relatedUserID *string) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	if amount > MaxTransactionAmount {
		return common.ErrAmountTooLarge
	}
	return s.store.Debit(ctx, userID, amount, txType, description, relatedUserID)
}

// AdminCredit is the explicit privileged variant that bypasses the
// amount ceiling for administrative corrections. It always records the
// admin_add ledger type so the audit trail stays honest.
func (s *Service) AdminCredit(ctx context.Context, userID string, amount int64, description string) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	log.WithFields(log.Fields{"user_id": userID, "amount": amount}).Warn("admin credit")
	return s.store.Credit(ctx, userID, amount, TxTypeAdminAdd, description, nil)
}

// AdminDebit is the privileged removal counterpart of AdminCredit,
// recorded as admin_remove. Still bounded by the actual balance.
func (s *Service) AdminDebit(ctx context.Context, userID string, amount int64, description string) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	log.WithFields(log.Fields{"user_id": userID, "amount": amount}).Warn("admin debit")
	return s.store.Debit(ctx, userID, amount, TxTypeAdminRemove, description, nil)
}

// Transfer moves coins between users as one atomic unit.
func (s *Service) Transfer(ctx context.Context, fromUserID, toUserID string, amount int64) error {
	if fromUserID == toUserID {
		return common.ErrSelfTransfer
	}
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	if amount > MaxTransactionAmount {
		return common.ErrAmountTooLarge
	}

	if err := s.store.Transfer(ctx, fromUserID, toUserID, amount); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"from":   fromUserID,
		"to":     toUserID,
		"amount": amount,
	}).Info("transfer completed")
	return nil
}

// History returns the latest ledger entries, newest first. typeFilter is
// a prefix match over the entry type ("" = all).
func (s *Service) History(ctx context.Context, userID string, limit int, typeFilter string) ([]*Transaction, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.store.History(ctx, userID, limit, typeFilter)
}

// Leaderboard returns the ranked accounts for a metric.
func (s *Service) Leaderboard(ctx context.Context, metric string, limit int) ([]*LeaderboardEntry, error) {
	if limit <= 0 || limit > 25 {
		limit = 10
	}
	return s.store.Leaderboard(ctx, metric, limit)
}
