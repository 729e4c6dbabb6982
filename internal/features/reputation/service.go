// service.go — grant validation above the repository.
package reputation

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
)

// Store is the persistence contract.
type Store interface {
	Give(ctx context.Context, fromID, toID string, delta int) (*Reputation, error)
	Get(ctx context.Context, userID string) (*Reputation, error)
	Top(ctx context.Context, limit int) ([]*Reputation, error)
}

// Service manages reputation.
type Service struct {
	store Store
}

// NewService creates the reputation service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Give grants +1 or −1 reputation from one user to another.
func (s *Service) Give(ctx context.Context, fromID, toID string, delta int) (*Reputation, error) {
	if fromID == toID {
		return nil, common.ErrSelfReputation
	}
	if delta != 1 && delta != -1 {
		return nil, common.ErrInvalidAmount
	}
	rep, err := s.store.Give(ctx, fromID, toID, delta)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"from":  fromID,
		"to":    toID,
		"delta": delta,
	}).Info("reputation granted")
	return rep, nil
}

// Get returns a user's reputation.
func (s *Service) Get(ctx context.Context, userID string) (*Reputation, error) {
	return s.store.Get(ctx, userID)
}

// Top returns the reputation leaderboard.
func (s *Service) Top(ctx context.Context, limit int) ([]*Reputation, error) {
	if limit <= 0 || limit > 25 {
		limit = 10
	}
	return s.store.Top(ctx, limit)
}
