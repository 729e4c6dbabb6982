// repository.go — wager persistence. Bet placement and settlement each
// run as one database transaction covering both the balance mutation
// (with its ledger entry) and the stats upsert; if either half fails the
// whole unit rolls back.
package gambling

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pilot2254/contrast-bot-sub000/internal/db/postgres"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/economy"
)

// Repository stores gambling stats and composes with the economy
// repository for the money side.
type Repository struct {
	db      *pgxpool.Pool
	economy *economy.Repository
}

// NewRepository creates a gambling repository.
func NewRepository(db *pgxpool.Pool, economyRepo *economy.Repository) *Repository {
	return &Repository{db: db, economy: economyRepo}
}

// PlaceBet debits the stake and bumps total_bet/games_played as one unit.
func (r *Repository) PlaceBet(ctx context.Context, userID string, amount int64, gameType string) error {
	return postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		desc := fmt.Sprintf("%s bet", gameType)
		if err := r.economy.DebitTx(ctx, tx, userID, amount, economy.TxTypeGamblingBet, desc, nil); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO gambling_stats (user_id, total_bet, games_played)
			VALUES ($1, $2, 1)
			ON CONFLICT (user_id) DO UPDATE
			SET total_bet = gambling_stats.total_bet + $2,
			    games_played = gambling_stats.games_played + 1,
			    updated_at = NOW()
		`, userID, amount)
		if err != nil {
			return fmt.Errorf("update bet stats: %w", err)
		}
		return nil
	})
}

// Settle records the outcome of one game: credits winAmount when
// positive and folds the settlement into the aggregates. totalLost grows
// by max(0, bet − won) for this settlement only.
func (r *Repository) Settle(ctx context.Context, userID string, betAmount, winAmount int64, gameType string) error {
	lost := betAmount - winAmount
	if lost < 0 {
		lost = 0
	}

	return postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if winAmount > 0 {
			desc := fmt.Sprintf("%s win", gameType)
			if err := r.economy.CreditTx(ctx, tx, userID, winAmount, economy.TxTypeGamblingWin, desc, nil); err != nil {
				return err
			}
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO gambling_stats (user_id, total_won, total_lost, biggest_win)
			VALUES ($1, $2, $3, $2)
			ON CONFLICT (user_id) DO UPDATE
			SET total_won = gambling_stats.total_won + $2,
			    total_lost = gambling_stats.total_lost + $3,
			    biggest_win = GREATEST(gambling_stats.biggest_win, $2),
			    updated_at = NOW()
		`, userID, winAmount, lost)
		if err != nil {
			return fmt.Errorf("update settle stats: %w", err)
		}
		return nil
	})
}

// GetStats returns the aggregate row, zero-valued when the user has
// never placed a bet.
func (r *Repository) GetStats(ctx context.Context, userID string) (*Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT user_id, total_bet, total_won, total_lost, games_played, biggest_win, updated_at
		FROM gambling_stats
		WHERE user_id = $1
	`, userID).Scan(&s.UserID, &s.TotalBet, &s.TotalWon, &s.TotalLost, &s.GamesPlayed, &s.BiggestWin, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &Stats{UserID: userID}, nil
		}
		return nil, fmt.Errorf("get gambling stats: %w", err)
	}
	return &s, nil
}

// GetBalance reads the current account balance (russian roulette stakes
// the whole balance, so the engine needs the read path).
func (r *Repository) GetBalance(ctx context.Context, userID string) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `SELECT balance FROM accounts WHERE user_id = $1`, userID).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}
