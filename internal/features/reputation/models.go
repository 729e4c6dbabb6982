// Package reputation implements peer-given reputation points. Each
// grant is logged; the log enforces the daily quota and the per-pair
// cooldown.
package reputation

import "time"

// Grant limits.
const (
	DailyLimit   = 3              // grants a giver may hand out per rolling day
	PairCooldown = 24 * time.Hour // same giver → same receiver
)

// Reputation is the per-user aggregate.
type Reputation struct {
	UserID    string    `db:"user_id"`
	Points    int64     `db:"points"`
	UpdatedAt time.Time `db:"updated_at"`
}

// LogEntry records one grant.
type LogEntry struct {
	ID         int64     `db:"id"`
	FromUserID string    `db:"from_user_id"`
	ToUserID   string    `db:"to_user_id"`
	Delta      int       `db:"delta"`
	CreatedAt  time.Time `db:"created_at"`
}
