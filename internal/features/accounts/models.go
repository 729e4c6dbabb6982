// Package accounts owns the canonical per-user economy record.
// models.go describes the account row.
package accounts

import "time"

// Account is the per-user economy record. One row per Discord user,
// created lazily on first reference and never deleted.
//
// balance never goes negative. totalEarned and totalSpent are lifetime
// counters and need not reconcile with balance — wagering churn is
// accounted separately (the profit/loss display relies on that).
type Account struct {
	UserID      string `db:"user_id"`      // Discord snowflake
	DisplayName string `db:"display_name"` // reconciled on read, last-writer-wins
	Balance     int64  `db:"balance"`      // wagerable main funds
	TotalEarned int64  `db:"total_earned"`
	TotalSpent  int64  `db:"total_spent"`

	// Reward claim state, epoch millis, 0 = never claimed.
	LastDaily   int64 `db:"last_daily"`
	LastWeekly  int64 `db:"last_weekly"`
	LastMonthly int64 `db:"last_monthly"`
	LastYearly  int64 `db:"last_yearly"`

	DailyStreak   int `db:"daily_streak"`
	WeeklyStreak  int `db:"weekly_streak"`
	MonthlyStreak int `db:"monthly_streak"`
	YearlyStreak  int `db:"yearly_streak"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
