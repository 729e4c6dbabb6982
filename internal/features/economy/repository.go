// repository.go — all writes to accounts + transactions. Each exported
// mutation is one database transaction: the balance update and its
// ledger insert commit or roll back together. The *Tx variants run
// inside a caller-owned transaction so compound operations (bets, shop
// purchases, reward claims, safe moves) stay atomic across features.
package economy

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
	"github.com/pilot2254/contrast-bot-sub000/internal/db/postgres"
)

// Repository performs balance and ledger operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates an economy repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreditTx increments balance and total_earned and records the paired
// ledger entry, all on the caller's transaction.
func (r *Repository) CreditTx(ctx context.Context, q postgres.Queryer, userID string, amount int64, txType, description string, relatedUserID *string) error {
	tag, err := q.Exec(ctx, `
		UPDATE accounts
		SET balance = balance + $2, total_earned = total_earned + $2, updated_at = NOW()
		WHERE user_id = $1
	`, userID, amount)
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrAccountNotFound
	}

	if err := r.recordTx(ctx, q, userID, txType, amount, description, relatedUserID); err != nil {
		return err
	}
	return nil
}

// DebitTx decrements balance and increments total_spent, guarded by the
// balance >= amount condition so two racing debits cannot both pass a
// stale sufficiency check. The ledger entry is recorded with the amount
// negated.
func (r *Repository) DebitTx(ctx context.Context, q postgres.Queryer, userID string, amount int64, txType, description string, relatedUserID *string) error {
	tag, err := q.Exec(ctx, `
		UPDATE accounts
		SET balance = balance - $2, total_spent = total_spent + $2, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
	`, userID, amount)
	if err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the row is missing or the balance cannot cover the
		// amount; accounts are materialized before any debit path, so
		// report insufficient funds.
		return common.ErrInsufficientFunds
	}

	if err := r.recordTx(ctx, q, userID, txType, -amount, description, relatedUserID); err != nil {
		return err
	}
	return nil
}

// recordTx inserts exactly one ledger row. Only called from the same
// transaction as the balance mutation it documents.
func (r *Repository) recordTx(ctx context.Context, q postgres.Queryer, userID, txType string, amount int64, description string, relatedUserID *string) error {
	_, err := q.Exec(ctx, `
		INSERT INTO transactions (user_id, type, amount, description, related_user_id)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, txType, amount, description, relatedUserID)
	if err != nil {
		return fmt.Errorf("record transaction: %w", err)
	}
	return nil
}

// Credit runs CreditTx in its own transaction.
func (r *Repository) Credit(ctx context.Context, userID string, amount int64, txType, description string, relatedUserID *string) error {
	return postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return r.CreditTx(ctx, tx, userID, amount, txType, description, relatedUserID)
	})
}

// Debit runs DebitTx in its own transaction.
func (r *Repository) Debit(ctx context.Context, userID string, amount int64, txType, description string, relatedUserID *string) error {
	return postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return r.DebitTx(ctx, tx, userID, amount, txType, description, relatedUserID)
	})
}

// Transfer moves coins between two users as a single unit: the sender
// debit and the recipient credit both succeed or neither does, with two
// ledger entries cross-referencing each other via related_user_id.
func (r *Repository) Transfer(ctx context.Context, fromUserID, toUserID string, amount int64) error {
	return postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		desc := fmt.Sprintf("Transfer of %d coins", amount)
		if err := r.DebitTx(ctx, tx, fromUserID, amount, TxTypeTransferSent, desc, &toUserID); err != nil {
			return err
		}
		if err := r.CreditTx(ctx, tx, toUserID, amount, TxTypeTransferReceived, desc, &fromUserID); err != nil {
			return err
		}
		return nil
	})
}

// History returns the newest ledger entries for a user, optionally
// filtered by a type prefix ("transfer", "gambling", ...).
func (r *Repository) History(ctx context.Context, userID string, limit int, typeFilter string) ([]*Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, description, related_user_id, created_at
		FROM transactions
		WHERE user_id = $1
	`
	args := []any{userID}
	if typeFilter != "" {
		query += ` AND type LIKE $2 || '%'`
		args = append(args, typeFilter)
	}
	query += fmt.Sprintf(` ORDER BY id DESC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var txs []*Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Description, &t.RelatedUserID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, &t)
	}
	return txs, rows.Err()
}

// Leaderboard ranks accounts by the given metric. It reads off the
// accounts table, not the ledger.
func (r *Repository) Leaderboard(ctx context.Context, metric string, limit int) ([]*LeaderboardEntry, error) {
	var column string
	switch metric {
	case MetricBalance:
		column = "balance"
	case MetricEarned:
		column = "total_earned"
	case MetricSpent:
		column = "total_spent"
	default:
		return nil, fmt.Errorf("unknown leaderboard metric %q", metric)
	}

	query := fmt.Sprintf(`
		SELECT user_id, display_name, %s
		FROM accounts
		ORDER BY %s DESC, user_id
		LIMIT $1
	`, column, column)

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.Value); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
