// repository.go — blacklist and app_settings tables.
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores admin data.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates an admin repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// BlacklistAdd blocks a user. Re-adding updates the reason.
func (r *Repository) BlacklistAdd(ctx context.Context, userID, reason, addedByID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO blacklist (user_id, reason, added_by_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET reason = $2, added_by_id = $3
	`, userID, reason, addedByID)
	if err != nil {
		return fmt.Errorf("blacklist add: %w", err)
	}
	return nil
}

// BlacklistRemove unblocks a user. Removing an unlisted user is a no-op.
func (r *Repository) BlacklistRemove(ctx context.Context, userID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM blacklist WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("blacklist remove: %w", err)
	}
	return nil
}

// IsBlacklisted reports whether a user is blocked.
func (r *Repository) IsBlacklisted(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM blacklist WHERE user_id = $1)`, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("blacklist check: %w", err)
	}
	return exists, nil
}

// BlacklistAll lists blocked users.
func (r *Repository) BlacklistAll(ctx context.Context) ([]*BlacklistEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, reason, added_by_id, created_at FROM blacklist ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("query blacklist: %w", err)
	}
	defer rows.Close()

	var out []*BlacklistEntry
	for rows.Next() {
		var e BlacklistEntry
		if err := rows.Scan(&e.UserID, &e.Reason, &e.AddedByID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blacklist: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// SetSetting upserts a key/value pair in app_settings.
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO app_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// GetSetting reads a key from app_settings; ok is false when unset.
func (r *Repository) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM app_settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, true, nil
}
