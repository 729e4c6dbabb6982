// Package admin implements operator commands: password-elevated
// sessions, the blacklist, maintenance mode and manual balance
// corrections.
package admin

import "time"

// SessionTTL bounds how long an unlocked session stays valid.
const SessionTTL = time.Hour

// BlacklistEntry is one blocked user.
type BlacklistEntry struct {
	UserID    string    `db:"user_id"`
	Reason    string    `db:"reason"`
	AddedByID string    `db:"added_by_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Settings keys in app_settings.
const (
	settingMaintenance = "maintenance_mode"
)
