// service.go — XP awards. Message XP is cooldown gated per user with
// process-local state; purchased XP (shop items) bypasses the cooldown
// through GrantXP because it is bought, not earned.
package levels

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Store is the persistence contract.
type Store interface {
	AddXP(ctx context.Context, userID string, amount int64) (*UserLevel, error)
	Get(ctx context.Context, userID string) (*UserLevel, error)
	Top(ctx context.Context, limit int) ([]*UserLevel, error)
}

// Service manages XP and levels.
type Service struct {
	store Store

	mu        sync.Mutex
	lastAward map[string]time.Time
	rng       *rand.Rand
	now       func() time.Time
}

// NewService creates the levels service.
func NewService(store Store) *Service {
	return &Service{
		store:     store,
		lastAward: make(map[string]time.Time),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

// AwardMessageXP gives 15–25 XP for a message, at most once per cooldown
// per user. Returns the updated record and whether XP was awarded.
func (s *Service) AwardMessageXP(ctx context.Context, userID string) (*UserLevel, bool, error) {
	s.mu.Lock()
	last, seen := s.lastAward[userID]
	if seen && s.now().Sub(last) < MessageXPCooldown {
		s.mu.Unlock()
		return nil, false, nil
	}
	s.lastAward[userID] = s.now()
	amount := int64(MessageXPMin + s.rng.Intn(MessageXPMax-MessageXPMin+1))
	s.mu.Unlock()

	u, err := s.store.AddXP(ctx, userID, amount)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

// GrantXP adds XP directly, skipping the message cooldown. Used by shop
// purchase effects.
func (s *Service) GrantXP(ctx context.Context, userID string, amount int64) (*UserLevel, error) {
	return s.store.AddXP(ctx, userID, amount)
}

// Get returns the user's XP record.
func (s *Service) Get(ctx context.Context, userID string) (*UserLevel, error) {
	return s.store.Get(ctx, userID)
}

// Top returns the XP leaderboard.
func (s *Service) Top(ctx context.Context, limit int) ([]*UserLevel, error) {
	if limit <= 0 || limit > 25 {
		limit = 10
	}
	return s.store.Top(ctx, limit)
}
