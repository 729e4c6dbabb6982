// repository.go — claim persistence. A claim is one database
// transaction: lock the account row, evaluate the window against the
// locked state, advance lastClaim/streak and credit the reward. Two
// concurrent claims serialize on the row lock, so the loser re-reads
// state that is already claimed and gets the cooldown rejection.
package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pilot2254/contrast-bot-sub000/internal/db/postgres"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/economy"
)

// Repository persists reward claim state. It composes with the economy
// repository so the credit lands in the same transaction as the state
// update.
type Repository struct {
	db      *pgxpool.Pool
	economy *economy.Repository
}

// NewRepository creates a rewards repository.
func NewRepository(db *pgxpool.Pool, economyRepo *economy.Repository) *Repository {
	return &Repository{db: db, economy: economyRepo}
}

// Claim executes the full claim for one cadence. Returns *CooldownError
// (and changes nothing) when the claim is still gated.
func (r *Repository) Claim(ctx context.Context, userID string, c Cadence, now time.Time) (*ClaimResult, error) {
	var result *ClaimResult

	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		// Lock the row so the evaluate-then-write span is serialized
		// per account. Column names come from the cadence definition.
		query := fmt.Sprintf(
			`SELECT %s, %s FROM accounts WHERE user_id = $1 FOR UPDATE`,
			c.LastColumn, c.StreakColumn,
		)
		var lastClaim int64
		var streak int
		if err := tx.QueryRow(ctx, query, userID).Scan(&lastClaim, &streak); err != nil {
			return fmt.Errorf("lock claim state: %w", err)
		}

		d := c.Evaluate(lastClaim, streak, now)
		if !d.CanClaim {
			return &CooldownError{Cadence: c.Name, NextClaim: d.NextClaim, Remaining: d.Remaining}
		}

		update := fmt.Sprintf(
			`UPDATE accounts SET %s = $2, %s = $3, updated_at = NOW() WHERE user_id = $1`,
			c.LastColumn, c.StreakColumn,
		)
		if _, err := tx.Exec(ctx, update, userID, now.UnixMilli(), d.NewStreak); err != nil {
			return fmt.Errorf("update claim state: %w", err)
		}

		desc := fmt.Sprintf("%s reward (streak %d)", c.Name, d.NewStreak)
		if err := r.economy.CreditTx(ctx, tx, userID, d.Reward, c.TxType, desc, nil); err != nil {
			return err
		}

		result = &ClaimResult{Reward: d.Reward, Streak: d.NewStreak, NextClaim: d.NextClaim}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetState reads the stored claim state without locking (status path).
func (r *Repository) GetState(ctx context.Context, userID string, c Cadence) (lastClaim int64, streak int, err error) {
	query := fmt.Sprintf(
		`SELECT %s, %s FROM accounts WHERE user_id = $1`,
		c.LastColumn, c.StreakColumn,
	)
	err = r.db.QueryRow(ctx, query, userID).Scan(&lastClaim, &streak)
	if err != nil {
		return 0, 0, fmt.Errorf("read claim state: %w", err)
	}
	return lastClaim, streak, nil
}

// ClaimWork handles the work command: a plain cooldown gate with no
// streak, paid with the caller-chosen amount.
func (r *Repository) ClaimWork(ctx context.Context, userID string, cooldown time.Duration, amount int64, now time.Time) error {
	return postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var lastWork int64
		err := tx.QueryRow(ctx,
			`SELECT last_work FROM accounts WHERE user_id = $1 FOR UPDATE`, userID,
		).Scan(&lastWork)
		if err != nil {
			return fmt.Errorf("lock work state: %w", err)
		}

		if lastWork != 0 {
			next := time.UnixMilli(lastWork).Add(cooldown)
			if now.Before(next) {
				return &CooldownError{Cadence: "work", NextClaim: next, Remaining: next.Sub(now)}
			}
		}

		if _, err := tx.Exec(ctx,
			`UPDATE accounts SET last_work = $2, updated_at = NOW() WHERE user_id = $1`,
			userID, now.UnixMilli(),
		); err != nil {
			return fmt.Errorf("update work state: %w", err)
		}

		return r.economy.CreditTx(ctx, tx, userID, amount, economy.TxTypeWork, "Work payout", nil)
	})
}
