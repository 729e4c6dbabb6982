// Package reminders schedules one-shot reminders delivered by the cron
// dispatcher as direct messages.
package reminders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrEmptyReminder is returned for blank reminder text.
var ErrEmptyReminder = errors.New("reminder text is empty")

// ErrRemindInPast is returned when the requested time is not in the future.
var ErrRemindInPast = errors.New("reminder time is in the past")

const maxReminderLength = 500

// Reminder is one scheduled reminder.
type Reminder struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	Text      string    `db:"text"`
	RemindAt  time.Time `db:"remind_at"`
	Delivered bool      `db:"delivered"`
	CreatedAt time.Time `db:"created_at"`
}

// Repository stores reminders.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a reminders repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Schedule records a reminder for the future.
func (r *Repository) Schedule(ctx context.Context, userID, text string, at time.Time) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyReminder
	}
	if len(text) > maxReminderLength {
		text = text[:maxReminderLength]
	}
	if !at.After(time.Now()) {
		return 0, ErrRemindInPast
	}
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO reminders (user_id, text, remind_at) VALUES ($1, $2, $3) RETURNING id
	`, userID, text, at).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert reminder: %w", err)
	}
	return id, nil
}

// Due returns undelivered reminders whose time has passed.
func (r *Repository) Due(ctx context.Context, limit int) ([]*Reminder, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, text, remind_at, delivered, created_at
		FROM reminders
		WHERE NOT delivered AND remind_at <= NOW()
		ORDER BY remind_at LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query due reminders: %w", err)
	}
	defer rows.Close()

	var out []*Reminder
	for rows.Next() {
		var rem Reminder
		if err := rows.Scan(&rem.ID, &rem.UserID, &rem.Text, &rem.RemindAt, &rem.Delivered, &rem.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		out = append(out, &rem)
	}
	return out, rows.Err()
}

// MarkDelivered flags a reminder as sent.
func (r *Repository) MarkDelivered(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `UPDATE reminders SET delivered = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("mark reminder delivered: %w", err)
	}
	return nil
}

// Pending lists a user's undelivered reminders.
func (r *Repository) Pending(ctx context.Context, userID string) ([]*Reminder, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, text, remind_at, delivered, created_at
		FROM reminders WHERE user_id = $1 AND NOT delivered ORDER BY remind_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query pending reminders: %w", err)
	}
	defer rows.Close()

	var out []*Reminder
	for rows.Next() {
		var rem Reminder
		if err := rows.Scan(&rem.ID, &rem.UserID, &rem.Text, &rem.RemindAt, &rem.Delivered, &rem.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		out = append(out, &rem)
	}
	return out, rows.Err()
}
