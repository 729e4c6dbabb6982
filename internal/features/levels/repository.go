// repository.go — user_levels table access.
package levels

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pilot2254/contrast-bot-sub000/internal/db/postgres"
)

// Repository stores XP records.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a levels repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// AddXPTx adds XP on the caller's transaction (or the pool) and stores
// the recomputed level. Returns the updated record.
func (r *Repository) AddXPTx(ctx context.Context, q postgres.Queryer, userID string, amount int64) (*UserLevel, error) {
	var u UserLevel
	err := q.QueryRow(ctx, `
		INSERT INTO user_levels (user_id, xp)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET xp = user_levels.xp + $2, updated_at = NOW()
		RETURNING user_id, xp, level, updated_at
	`, userID, amount).Scan(&u.UserID, &u.XP, &u.Level, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("add xp: %w", err)
	}

	// The level column lags the xp column by design; recompute and
	// persist when the curve crossed a boundary.
	newLevel := LevelForXP(u.XP)
	if newLevel != u.Level {
		if _, err := q.Exec(ctx, `
			UPDATE user_levels SET level = $2, updated_at = NOW() WHERE user_id = $1
		`, userID, newLevel); err != nil {
			return nil, fmt.Errorf("update level: %w", err)
		}
		u.Level = newLevel
	}
	return &u, nil
}

// AddXP runs AddXPTx against the pool.
func (r *Repository) AddXP(ctx context.Context, userID string, amount int64) (*UserLevel, error) {
	return r.AddXPTx(ctx, r.db, userID, amount)
}

// Get returns the XP record, zero-valued when the user has none.
func (r *Repository) Get(ctx context.Context, userID string) (*UserLevel, error) {
	var u UserLevel
	err := r.db.QueryRow(ctx, `
		SELECT user_id, xp, level, updated_at FROM user_levels WHERE user_id = $1
	`, userID).Scan(&u.UserID, &u.XP, &u.Level, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &UserLevel{UserID: userID}, nil
		}
		return nil, fmt.Errorf("get level: %w", err)
	}
	return &u, nil
}

// Top returns the highest-XP users.
func (r *Repository) Top(ctx context.Context, limit int) ([]*UserLevel, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, xp, level, updated_at
		FROM user_levels ORDER BY xp DESC, user_id LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query level top: %w", err)
	}
	defer rows.Close()

	var out []*UserLevel
	for rows.Next() {
		var u UserLevel
		if err := rows.Scan(&u.UserID, &u.XP, &u.Level, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan level: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}
