// Package levels implements XP and leveling. XP is earned passively per
// message (cooldown gated) or granted directly by shop items.
package levels

import "time"

// Message XP parameters.
const (
	MessageXPMin      = 15
	MessageXPMax      = 25
	MessageXPCooldown = 60 * time.Second
)

// UserLevel is the per-user XP record.
type UserLevel struct {
	UserID    string    `db:"user_id"`
	XP        int64     `db:"xp"`
	Level     int       `db:"level"`
	UpdatedAt time.Time `db:"updated_at"`
}

// XPForNextLevel is the XP cost of the step from level to level+1.
func XPForNextLevel(level int) int64 {
	l := int64(level)
	return 5*l*l + 50*l + 100
}

// LevelForXP computes the level reached with the given total XP.
func LevelForXP(xp int64) int {
	level := 0
	for xp >= XPForNextLevel(level) {
		xp -= XPForNextLevel(level)
		level++
	}
	return level
}
