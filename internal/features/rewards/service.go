// service.go — reward claim orchestration.
package rewards

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
)

// Work payout parameters.
const (
	WorkCooldown  = 1 * time.Hour
	WorkMinPayout = 50
	WorkMaxPayout = 150
)

// Store is the persistence contract for claims.
type Store interface {
	Claim(ctx context.Context, userID string, c Cadence, now time.Time) (*ClaimResult, error)
	GetState(ctx context.Context, userID string, c Cadence) (lastClaim int64, streak int, err error)
	ClaimWork(ctx context.Context, userID string, cooldown time.Duration, amount int64, now time.Time) error
}

// Service manages time-gated reward claims.
type Service struct {
	store Store
	now   func() time.Time // injectable clock for tests
	rng   *rand.Rand
}

// NewService creates the rewards service.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Claim attempts a claim for the named cadence. On cooldown it returns
// *CooldownError with the remaining wait and leaves state untouched.
func (s *Service) Claim(ctx context.Context, userID, cadenceName string) (*ClaimResult, error) {
	c, ok := Cadences[cadenceName]
	if !ok {
		return nil, fmt.Errorf("unknown reward cadence %q", cadenceName)
	}

	res, err := s.store.Claim(ctx, userID, c, s.now())
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"cadence": c.Name,
		"reward":  res.Reward,
		"streak":  res.Streak,
	}).Info("reward claimed")
	return res, nil
}

// Status reports claim eligibility without mutating anything. It shares
// the Evaluate predicate with Claim, so the two cannot disagree.
func (s *Service) Status(ctx context.Context, userID, cadenceName string) (*Status, error) {
	c, ok := Cadences[cadenceName]
	if !ok {
		return nil, fmt.Errorf("unknown reward cadence %q", cadenceName)
	}

	lastClaim, streak, err := s.store.GetState(ctx, userID, c)
	if err != nil {
		return nil, err
	}

	st := c.StatusFromState(lastClaim, streak, s.now())
	return &st, nil
}

// Work pays a random amount on a one-hour cooldown. No streak.
func (s *Service) Work(ctx context.Context, userID string) (int64, error) {
	amount := int64(WorkMinPayout + s.rng.Intn(WorkMaxPayout-WorkMinPayout+1))
	if err := s.store.ClaimWork(ctx, userID, WorkCooldown, amount, s.now()); err != nil {
		return 0, err
	}
	return amount, nil
}
