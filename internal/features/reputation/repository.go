// repository.go — reputation and reputation_log tables. A grant writes
// the log row and bumps the aggregate in one transaction; the quota
// checks read the log inside the same transaction.
package reputation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
	"github.com/pilot2254/contrast-bot-sub000/internal/db/postgres"
)

// Repository stores reputation data.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a reputation repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Give grants delta (+1 or −1) from one user to another, enforcing the
// daily quota and the per-pair cooldown.
func (r *Repository) Give(ctx context.Context, fromID, toID string, delta int) (*Reputation, error) {
	var rep Reputation

	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var givenToday int
		if err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM reputation_log
			WHERE from_user_id = $1 AND created_at > NOW() - INTERVAL '24 hours'
		`, fromID).Scan(&givenToday); err != nil {
			return fmt.Errorf("count daily grants: %w", err)
		}
		if givenToday >= DailyLimit {
			return common.ErrReputationDailyLimit
		}

		var pairRecent int
		if err := tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM reputation_log
			WHERE from_user_id = $1 AND to_user_id = $2
			  AND created_at > NOW() - INTERVAL '24 hours'
		`, fromID, toID).Scan(&pairRecent); err != nil {
			return fmt.Errorf("count pair grants: %w", err)
		}
		if pairRecent > 0 {
			return common.ErrReputationPairCooldown
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO reputation_log (from_user_id, to_user_id, delta)
			VALUES ($1, $2, $3)
		`, fromID, toID, delta); err != nil {
			return fmt.Errorf("insert reputation log: %w", err)
		}

		err := tx.QueryRow(ctx, `
			INSERT INTO reputation (user_id, points)
			VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE
			SET points = reputation.points + $2, updated_at = NOW()
			RETURNING user_id, points, updated_at
		`, toID, delta).Scan(&rep.UserID, &rep.Points, &rep.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update reputation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// Get returns a user's reputation, zero-valued when never rated.
func (r *Repository) Get(ctx context.Context, userID string) (*Reputation, error) {
	var rep Reputation
	err := r.db.QueryRow(ctx, `
		SELECT user_id, points, updated_at FROM reputation WHERE user_id = $1
	`, userID).Scan(&rep.UserID, &rep.Points, &rep.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &Reputation{UserID: userID}, nil
		}
		return nil, fmt.Errorf("get reputation: %w", err)
	}
	return &rep, nil
}

// Top returns the highest-reputation users.
func (r *Repository) Top(ctx context.Context, limit int) ([]*Reputation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, points, updated_at
		FROM reputation ORDER BY points DESC, user_id LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query reputation top: %w", err)
	}
	defer rows.Close()

	var out []*Reputation
	for rows.Next() {
		var rep Reputation
		if err := rows.Scan(&rep.UserID, &rep.Points, &rep.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan reputation: %w", err)
		}
		out = append(out, &rep)
	}
	return out, rows.Err()
}
