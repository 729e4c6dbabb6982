// cadence.go — the pure claim-window evaluator and reward formulas.
// Both Claim and Status run through Evaluate; there is exactly one
// eligibility predicate.
package rewards

import (
	"math"
	"time"
)

// Decision is the outcome of evaluating a claim attempt at a point in
// time. When CanClaim is false, Remaining holds the wait until the next
// eligible moment and no other field is meaningful except NextClaim.
type Decision struct {
	CanClaim  bool
	NewStreak int
	Reward    int64
	NextClaim time.Time
	Remaining time.Duration
}

// Evaluate applies the cadence transition rule to stored state.
// lastClaimMillis is epoch millis, 0 = never claimed.
//
//   - never claimed           → streak 1, base reward
//   - elapsed < cooldown      → reject, report remaining wait
//   - elapsed ≤ resetWindow   → streak continues (+1)
//   - elapsed > resetWindow   → streak broken, back to 1
func (c Cadence) Evaluate(lastClaimMillis int64, streak int, now time.Time) Decision {
	if lastClaimMillis == 0 {
		return Decision{
			CanClaim:  true,
			NewStreak: 1,
			Reward:    c.Reward(1),
			NextClaim: now.Add(c.Cooldown),
		}
	}

	lastClaim := time.UnixMilli(lastClaimMillis)
	elapsed := now.Sub(lastClaim)

	if elapsed < c.Cooldown {
		next := lastClaim.Add(c.Cooldown)
		return Decision{
			CanClaim:  false,
			NextClaim: next,
			Remaining: next.Sub(now),
		}
	}

	newStreak := 1
	if elapsed <= c.ResetWindow {
		newStreak = streak + 1
	}

	return Decision{
		CanClaim:  true,
		NewStreak: newStreak,
		Reward:    c.Reward(newStreak),
		NextClaim: now.Add(c.Cooldown),
	}
}

// Reward computes the payout for a given streak value.
func (c Cadence) Reward(streak int) int64 {
	if streak < 1 {
		streak = 1
	}
	if c.Additive {
		bonus := c.StepBonus * int64(streak-1)
		if bonus > c.BonusCap {
			bonus = c.BonusCap
		}
		return c.Base + bonus
	}

	mult := 1 + c.StepRate*float64(streak-1)
	if mult > c.CapMultiplier {
		mult = c.CapMultiplier
	}
	return int64(math.Floor(float64(c.Base) * mult))
}

// StatusFromState derives the read-only status view from stored state.
func (c Cadence) StatusFromState(lastClaimMillis int64, streak int, now time.Time) Status {
	d := c.Evaluate(lastClaimMillis, streak, now)

	st := Status{
		CanClaim:      d.CanClaim,
		NextClaimTime: d.NextClaim,
		CurrentStreak: streak,
	}
	if d.CanClaim {
		st.ProjectedNextReward = d.Reward
	} else {
		// Claiming right when the cooldown lapses always lands inside
		// the reset window, so the streak would continue.
		st.ProjectedNextReward = c.Reward(streak + 1)
	}
	return st
}
