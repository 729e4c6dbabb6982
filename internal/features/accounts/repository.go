// repository.go — accounts table access. Methods take a postgres.Queryer
// so callers can run them against the pool or inside a shared transaction.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
	"github.com/pilot2254/contrast-bot-sub000/internal/db/postgres"
)

const accountColumns = `
	user_id, display_name, balance, total_earned, total_spent,
	last_daily, last_weekly, last_monthly, last_yearly,
	daily_streak, weekly_streak, monthly_streak, yearly_streak,
	created_at, updated_at`

// Repository reads and writes the accounts table.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates an accounts repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Pool exposes the underlying pool for services that compose
// cross-feature transactions.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.db
}

// GetOrCreate fetches the account, inserting it with the starting
// balance when missing. A stored display name that drifted from the
// supplied one is overwritten as a side effect (last-writer-wins);
// an empty supplied name keeps the stored one. A non-zero starting
// balance is recorded in the ledger so replaying transactions from zero
// reproduces the balance.
func (r *Repository) GetOrCreate(ctx context.Context, userID, displayName string, startingBalance int64) (*Account, error) {
	var acc *Account
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		// xmax = 0 distinguishes a fresh insert from the conflict path.
		query := `
			INSERT INTO accounts (user_id, display_name, balance, total_earned)
			VALUES ($1, $2, $3, $3)
			ON CONFLICT (user_id) DO UPDATE
			SET display_name = CASE WHEN EXCLUDED.display_name = ''
				THEN accounts.display_name ELSE EXCLUDED.display_name END,
			    updated_at = NOW()
			RETURNING ` + accountColumns + `, (xmax = 0) AS inserted`

		var a Account
		var inserted bool
		err := tx.QueryRow(ctx, query, userID, displayName, startingBalance).Scan(
			&a.UserID, &a.DisplayName, &a.Balance, &a.TotalEarned, &a.TotalSpent,
			&a.LastDaily, &a.LastWeekly, &a.LastMonthly, &a.LastYearly,
			&a.DailyStreak, &a.WeeklyStreak, &a.MonthlyStreak, &a.YearlyStreak,
			&a.CreatedAt, &a.UpdatedAt, &inserted,
		)
		if err != nil {
			return fmt.Errorf("get or create account: %w", err)
		}

		if inserted && startingBalance > 0 {
			if _, err := tx.Exec(ctx, `
				INSERT INTO transactions (user_id, type, amount, description)
				VALUES ($1, 'bonus', $2, 'Starting balance')
			`, userID, startingBalance); err != nil {
				return fmt.Errorf("record starting balance: %w", err)
			}
		}

		acc = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// Get returns the account or common.ErrAccountNotFound.
func (r *Repository) Get(ctx context.Context, q postgres.Queryer, userID string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`
	acc, err := scanAccount(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return acc, nil
}

// LockForUpdate loads the account row with FOR UPDATE so the calling
// transaction serializes against every other mutation of the same user.
func (r *Repository) LockForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 FOR UPDATE`
	acc, err := scanAccount(tx.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("lock account: %w", err)
	}
	return acc, nil
}

// Count returns the number of accounts (nightly summary job).
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n)
	return n, err
}

// TotalCirculation sums every balance (nightly summary job).
func (r *Repository) TotalCirculation(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(balance), 0) FROM accounts`).Scan(&total)
	return total, err
}

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.UserID, &a.DisplayName, &a.Balance, &a.TotalEarned, &a.TotalSpent,
		&a.LastDaily, &a.LastWeekly, &a.LastMonthly, &a.LastYearly,
		&a.DailyStreak, &a.WeeklyStreak, &a.MonthlyStreak, &a.YearlyStreak,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
