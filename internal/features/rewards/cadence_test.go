package rewards

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateFirstClaim(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, c := range Cadences {
		t.Run(name, func(t *testing.T) {
			d := c.Evaluate(0, 0, now)
			require.True(t, d.CanClaim)
			assert.Equal(t, 1, d.NewStreak)
			assert.Equal(t, c.Base, d.Reward)
			assert.Equal(t, now.Add(c.Cooldown), d.NextClaim)
		})
	}
}

func TestEvaluateCooldownBoundaries(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := Daily

	tests := []struct {
		name      string
		elapsed   time.Duration
		canClaim  bool
		newStreak int
	}{
		{"immediately after claim", time.Millisecond, false, 0},
		{"one ms before cooldown ends", c.Cooldown - time.Millisecond, false, 0},
		{"exactly at cooldown", c.Cooldown, true, 6},
		{"inside reset window", c.Cooldown + time.Hour, true, 6},
		{"exactly at reset window", c.ResetWindow, true, 6},
		{"one ms past reset window", c.ResetWindow + time.Millisecond, true, 1},
		{"days past reset window", c.ResetWindow + 72*time.Hour, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := now.Add(-tt.elapsed).UnixMilli()
			d := c.Evaluate(last, 5, now)
			assert.Equal(t, tt.canClaim, d.CanClaim)
			if tt.canClaim {
				assert.Equal(t, tt.newStreak, d.NewStreak)
			} else {
				assert.Greater(t, d.Remaining, time.Duration(0))
				assert.Equal(t, time.UnixMilli(last).Add(c.Cooldown), d.NextClaim)
			}
		})
	}
}

func TestEvaluateRejectionReportsRemaining(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	last := now.Add(-5 * time.Hour).UnixMilli()

	d := Daily.Evaluate(last, 3, now)
	require.False(t, d.CanClaim)
	assert.Equal(t, 15*time.Hour, d.Remaining)
}

func TestDailyRewardAdditive(t *testing.T) {
	tests := []struct {
		streak int
		want   int64
	}{
		{1, 100},
		{2, 125},
		{5, 200},
		{21, 600},  // bonus hits the 500 cap exactly
		{50, 600},  // stays capped
		{100, 600},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Daily.Reward(tt.streak), "streak %d", tt.streak)
	}
}

func TestMultiplicativeRewardCaps(t *testing.T) {
	tests := []struct {
		name   string
		c      Cadence
		streak int
		want   int64
	}{
		{"weekly first", Weekly, 1, 750},
		{"weekly second", Weekly, 2, 862},       // floor(750 × 1.15)
		{"weekly at cap", Weekly, 21, 3000},     // 1 + 0.15×20 = 4.0
		{"weekly past cap", Weekly, 50, 3000},
		{"monthly first", Monthly, 1, 500},
		{"monthly at cap", Monthly, 21, 1500},   // 1 + 0.10×20 = 3.0
		{"monthly past cap", Monthly, 40, 1500},
		{"yearly first", Yearly, 1, 1000},
		{"yearly second", Yearly, 2, 1200},
		{"yearly at cap", Yearly, 21, 5000},     // 1 + 0.20×20 = 5.0
		{"yearly past cap", Yearly, 30, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Reward(tt.streak))
		})
	}
}

func TestRewardClampsBelowOne(t *testing.T) {
	assert.Equal(t, Daily.Reward(1), Daily.Reward(0))
	assert.Equal(t, Weekly.Reward(1), Weekly.Reward(-3))
}

func TestStatusMatchesEvaluate(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := Weekly

	// On cooldown: status must reject and project the continued streak.
	last := now.Add(-time.Hour).UnixMilli()
	st := c.StatusFromState(last, 4, now)
	require.False(t, st.CanClaim)
	assert.Equal(t, 4, st.CurrentStreak)
	assert.Equal(t, c.Reward(5), st.ProjectedNextReward)
	assert.Equal(t, time.UnixMilli(last).Add(c.Cooldown), st.NextClaimTime)

	// Eligible: status must agree with the claim decision exactly.
	last = now.Add(-c.Cooldown - time.Hour).UnixMilli()
	st = c.StatusFromState(last, 4, now)
	d := c.Evaluate(last, 4, now)
	require.True(t, st.CanClaim)
	assert.Equal(t, d.Reward, st.ProjectedNextReward)
}

func TestEvaluateIsPure(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	last := now.Add(-time.Hour).UnixMilli()

	first := Daily.Evaluate(last, 2, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Daily.Evaluate(last, 2, now))
	}
}
