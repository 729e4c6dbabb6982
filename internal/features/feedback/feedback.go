// Package feedback collects user feedback for the operators to review.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrEmptyFeedback is returned for blank feedback text.
var ErrEmptyFeedback = errors.New("feedback text is empty")

const maxFeedbackLength = 1000

// Entry is one feedback submission.
type Entry struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	Text      string    `db:"text"`
	Resolved  bool      `db:"resolved"`
	CreatedAt time.Time `db:"created_at"`
}

// Repository stores feedback.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a feedback repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Submit records feedback and returns its id.
func (r *Repository) Submit(ctx context.Context, userID, text string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyFeedback
	}
	if len(text) > maxFeedbackLength {
		text = text[:maxFeedbackLength]
	}
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO feedback (user_id, text) VALUES ($1, $2) RETURNING id
	`, userID, text).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert feedback: %w", err)
	}
	return id, nil
}

// Unresolved lists open feedback, oldest first (admin path).
func (r *Repository) Unresolved(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, text, resolved, created_at
		FROM feedback WHERE NOT resolved ORDER BY id LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	var out []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Text, &e.Resolved, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Resolve marks an entry as handled (admin path).
func (r *Repository) Resolve(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE feedback SET resolved = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("resolve feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("feedback entry not found")
	}
	return nil
}
