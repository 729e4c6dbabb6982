// repository.go — safe persistence. Deposits and withdrawals lock the
// account row first, then the safe row, and run both movements in the
// same transaction so neither side can change alone. Every compound
// operation on a user takes locks in that order (accounts, then safes)
// so concurrent safe moves and shop purchases cannot deadlock. Only the
// account side is ledgered — the paired transfer entries make ledger
// replay consistent without safe-side rows.
package safe

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
	"github.com/pilot2254/contrast-bot-sub000/internal/db/postgres"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/economy"
)

// Repository stores safes.
type Repository struct {
	db      *pgxpool.Pool
	economy *economy.Repository
}

// NewRepository creates a safe repository.
func NewRepository(db *pgxpool.Pool, economyRepo *economy.Repository) *Repository {
	return &Repository{db: db, economy: economyRepo}
}

// lockAccountTx takes the account row lock. Acquired before the safe
// row everywhere so the lock order matches the shop purchase path.
func (r *Repository) lockAccountTx(ctx context.Context, tx pgx.Tx, userID string) error {
	var balance int64
	err := tx.QueryRow(ctx,
		`SELECT balance FROM accounts WHERE user_id = $1 FOR UPDATE`, userID,
	).Scan(&balance)
	if err != nil {
		return fmt.Errorf("lock account: %w", err)
	}
	return nil
}

// ensureTx creates the safe row with default capacity if missing.
func (r *Repository) ensureTx(ctx context.Context, q postgres.Queryer, userID string) error {
	_, err := q.Exec(ctx, `
		INSERT INTO safes (user_id, balance, capacity)
		VALUES ($1, 0, $2)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, DefaultCapacity)
	if err != nil {
		return fmt.Errorf("ensure safe: %w", err)
	}
	return nil
}

// lockTx loads the safe row FOR UPDATE.
func (r *Repository) lockTx(ctx context.Context, tx pgx.Tx, userID string) (*Safe, error) {
	var s Safe
	err := tx.QueryRow(ctx, `
		SELECT user_id, balance, capacity, created_at, updated_at
		FROM safes WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&s.UserID, &s.Balance, &s.Capacity, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("lock safe: %w", err)
	}
	return &s, nil
}

// Deposit moves amount from the account balance into the safe.
// Preconditions (positive amount, sufficient account balance, capacity)
// are all checked under the locks; any violation rolls the unit back.
func (r *Repository) Deposit(ctx context.Context, userID string, amount int64) error {
	return postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.lockAccountTx(ctx, tx, userID); err != nil {
			return err
		}
		if err := r.ensureTx(ctx, tx, userID); err != nil {
			return err
		}
		s, err := r.lockTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if s.Balance+amount > s.Capacity {
			return common.ErrSafeCapacityExceeded
		}

		if err := r.economy.DebitTx(ctx, tx, userID, amount,
			economy.TxTypeTransferSent, "Deposit to safe", nil); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			UPDATE safes SET balance = balance + $2, updated_at = NOW() WHERE user_id = $1
		`, userID, amount); err != nil {
			return fmt.Errorf("credit safe: %w", err)
		}
		return nil
	})
}

// Withdraw moves amount from the safe back to the account balance.
func (r *Repository) Withdraw(ctx context.Context, userID string, amount int64) error {
	return postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.lockAccountTx(ctx, tx, userID); err != nil {
			return err
		}
		if err := r.ensureTx(ctx, tx, userID); err != nil {
			return err
		}
		s, err := r.lockTx(ctx, tx, userID)
		if err != nil {
			return err
		}
		if s.Balance < amount {
			return common.ErrSafeInsufficient
		}

		if _, err := tx.Exec(ctx, `
			UPDATE safes SET balance = balance - $2, updated_at = NOW() WHERE user_id = $1
		`, userID, amount); err != nil {
			return fmt.Errorf("debit safe: %w", err)
		}

		return r.economy.CreditTx(ctx, tx, userID, amount,
			economy.TxTypeTransferReceived, "Withdrawal from safe", nil)
	})
}

// UpgradeCapacityTx raises the capacity on the caller's transaction.
// Shop purchase effects are the only caller.
func (r *Repository) UpgradeCapacityTx(ctx context.Context, q postgres.Queryer, userID string, additional int64) error {
	if err := r.ensureTx(ctx, q, userID); err != nil {
		return err
	}
	_, err := q.Exec(ctx, `
		UPDATE safes SET capacity = capacity + $2, updated_at = NOW() WHERE user_id = $1
	`, userID, additional)
	if err != nil {
		return fmt.Errorf("upgrade safe capacity: %w", err)
	}
	return nil
}

// Get returns the safe, a default-capacity zero row when none exists.
func (r *Repository) Get(ctx context.Context, userID string) (*Safe, error) {
	var s Safe
	err := r.db.QueryRow(ctx, `
		SELECT user_id, balance, capacity, created_at, updated_at
		FROM safes WHERE user_id = $1
	`, userID).Scan(&s.UserID, &s.Balance, &s.Capacity, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &Safe{UserID: userID, Capacity: DefaultCapacity}, nil
		}
		return nil, fmt.Errorf("get safe: %w", err)
	}
	return &s, nil
}
