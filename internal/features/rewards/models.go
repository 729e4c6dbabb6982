// Package rewards implements the time-gated claims: daily, weekly,
// monthly and yearly. All four are instances of one state machine shape
// (lastClaim + streak) with per-cadence reward formulas.
package rewards

import (
	"fmt"
	"time"
)

// Cadence describes one reward cadence. The claim window logic is
// identical for all cadences; only the parameters and the reward formula
// differ. Daily uses an additive streak bonus, the longer cadences use a
// capped multiplier — the asymmetry is intentional, do not unify.
type Cadence struct {
	Name        string
	TxType      string
	Cooldown    time.Duration
	ResetWindow time.Duration // grace window; claiming past it breaks the streak
	Base        int64

	// Additive formula (daily): base + min(StepBonus×(streak−1), BonusCap)
	Additive  bool
	StepBonus int64
	BonusCap  int64

	// Multiplicative formula: base × min(1 + StepRate×(streak−1), CapMultiplier)
	StepRate      float64
	CapMultiplier float64

	// accounts table columns backing this cadence's state
	LastColumn   string
	StreakColumn string
}

// The four cadences. Parameters are fixed by design, not configuration.
var (
	Daily = Cadence{
		Name: "daily", TxType: "daily",
		Cooldown: 20 * time.Hour, ResetWindow: 48 * time.Hour,
		Base: 100, Additive: true, StepBonus: 25, BonusCap: 500,
		LastColumn: "last_daily", StreakColumn: "daily_streak",
	}
	Weekly = Cadence{
		Name: "weekly", TxType: "weekly",
		Cooldown: 7 * 24 * time.Hour, ResetWindow: 8 * 24 * time.Hour,
		Base: 750, StepRate: 0.15, CapMultiplier: 4,
		LastColumn: "last_weekly", StreakColumn: "weekly_streak",
	}
	Monthly = Cadence{
		Name: "monthly", TxType: "monthly",
		Cooldown: 30 * 24 * time.Hour, ResetWindow: 32 * 24 * time.Hour,
		Base: 500, StepRate: 0.10, CapMultiplier: 3,
		LastColumn: "last_monthly", StreakColumn: "monthly_streak",
	}
	Yearly = Cadence{
		Name: "yearly", TxType: "yearly",
		Cooldown: 365 * 24 * time.Hour, ResetWindow: 370 * 24 * time.Hour,
		Base: 1000, StepRate: 0.20, CapMultiplier: 5,
		LastColumn: "last_yearly", StreakColumn: "yearly_streak",
	}
)

// Cadences maps command names to cadence definitions.
var Cadences = map[string]Cadence{
	"daily":   Daily,
	"weekly":  Weekly,
	"monthly": Monthly,
	"yearly":  Yearly,
}

// ClaimResult is returned on a successful claim.
type ClaimResult struct {
	Reward    int64
	Streak    int
	NextClaim time.Time
}

// Status is the read-only view of a cadence for one user. It is computed
// by the same predicate as the claim path so the two can never drift.
type Status struct {
	CanClaim            bool
	NextClaimTime       time.Time
	CurrentStreak       int
	ProjectedNextReward int64
}

// CooldownError reports a claim attempted inside the cooldown window.
// No state changes when it is returned.
type CooldownError struct {
	Cadence   string
	NextClaim time.Time
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s reward already claimed, next claim in %s", e.Cadence, e.Remaining)
}
