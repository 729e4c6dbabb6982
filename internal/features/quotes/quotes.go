// Package quotes stores community quotes: add, fetch by id, random.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrQuoteNotFound is returned when no quote matches.
var ErrQuoteNotFound = errors.New("quote not found")

// ErrEmptyQuote is returned for blank quote text.
var ErrEmptyQuote = errors.New("quote text is empty")

const maxQuoteLength = 500

// Quote is one stored quote.
type Quote struct {
	ID        int64     `db:"id"`
	Text      string    `db:"text"`
	AuthorID  string    `db:"author_id"`
	AddedByID string    `db:"added_by_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Repository stores quotes.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a quotes repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Add inserts a quote and returns its id.
func (r *Repository) Add(ctx context.Context, text, authorID, addedByID string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyQuote
	}
	if len(text) > maxQuoteLength {
		text = text[:maxQuoteLength]
	}
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO quotes (text, author_id, added_by_id) VALUES ($1, $2, $3) RETURNING id
	`, text, authorID, addedByID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert quote: %w", err)
	}
	return id, nil
}

// Get fetches a quote by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Quote, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT id, text, author_id, added_by_id, created_at FROM quotes WHERE id = $1
	`, id))
}

// Random returns a uniformly random quote.
func (r *Repository) Random(ctx context.Context) (*Quote, error) {
	return r.scanOne(r.db.QueryRow(ctx, `
		SELECT id, text, author_id, added_by_id, created_at
		FROM quotes ORDER BY RANDOM() LIMIT 1
	`))
}

// Count returns the number of stored quotes.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM quotes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count quotes: %w", err)
	}
	return n, nil
}

// Delete removes a quote (admin path).
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrQuoteNotFound
	}
	return nil
}

func (r *Repository) scanOne(row pgx.Row) (*Quote, error) {
	var q Quote
	err := row.Scan(&q.ID, &q.Text, &q.AuthorID, &q.AddedByID, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("scan quote: %w", err)
	}
	return &q, nil
}
