package safe

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/accounts"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/economy"
)

// testPool connects to TEST_DATABASE_URL. The database must already be
// migrated; tests are skipped when the variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

// seedAccount creates a throwaway account and removes it afterwards.
func seedAccount(t *testing.T, pool *pgxpool.Pool, balance int64) string {
	t.Helper()

	userID := fmt.Sprintf("test-%d", time.Now().UnixNano())
	_, err := accounts.NewRepository(pool).GetOrCreate(context.Background(), userID, "tester", balance)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx := context.Background()
		pool.Exec(ctx, `DELETE FROM transactions WHERE user_id = $1`, userID)
		pool.Exec(ctx, `DELETE FROM safes WHERE user_id = $1`, userID)
		pool.Exec(ctx, `DELETE FROM accounts WHERE user_id = $1`, userID)
	})
	return userID
}

func TestDepositOverCapacity(t *testing.T) {
	pool := testPool(t)
	economyRepo := economy.NewRepository(pool)
	repo := NewRepository(pool, economyRepo)
	ctx := context.Background()

	userID := seedAccount(t, pool, DefaultCapacity*2)

	err := repo.Deposit(ctx, userID, DefaultCapacity+1)
	assert.ErrorIs(t, err, common.ErrSafeCapacityExceeded)

	// Neither balance moved and nothing was ledgered.
	acc, err := accounts.NewRepository(pool).Get(ctx, pool, userID)
	require.NoError(t, err)
	assert.Equal(t, DefaultCapacity*2, acc.Balance)

	s, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, s.Balance)
	assert.Equal(t, DefaultCapacity, s.Capacity)

	txs, err := economyRepo.History(ctx, userID, 10, "transfer")
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestDepositInsufficientFunds(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool, economy.NewRepository(pool))
	ctx := context.Background()

	userID := seedAccount(t, pool, 100)

	err := repo.Deposit(ctx, userID, 200)
	assert.ErrorIs(t, err, common.ErrInsufficientFunds)

	s, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, s.Balance)
}

func TestWithdrawInsufficient(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool, economy.NewRepository(pool))
	ctx := context.Background()

	userID := seedAccount(t, pool, 1000)
	require.NoError(t, repo.Deposit(ctx, userID, 300))

	err := repo.Withdraw(ctx, userID, 400)
	assert.ErrorIs(t, err, common.ErrSafeInsufficient)

	// The failed withdrawal changed nothing.
	s, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(300), s.Balance)

	acc, err := accounts.NewRepository(pool).Get(ctx, pool, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(700), acc.Balance)
}

func TestDepositWithdrawLedgerPairing(t *testing.T) {
	pool := testPool(t)
	economyRepo := economy.NewRepository(pool)
	repo := NewRepository(pool, economyRepo)
	ctx := context.Background()

	userID := seedAccount(t, pool, 1000)

	require.NoError(t, repo.Deposit(ctx, userID, 300))
	require.NoError(t, repo.Withdraw(ctx, userID, 100))

	acc, err := accounts.NewRepository(pool).Get(ctx, pool, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(800), acc.Balance)

	s, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), s.Balance)

	// Both moves are ledgered account-side, newest first.
	txs, err := economyRepo.History(ctx, userID, 10, "transfer")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, economy.TxTypeTransferReceived, txs[0].Type)
	assert.Equal(t, int64(100), txs[0].Amount)
	assert.Equal(t, economy.TxTypeTransferSent, txs[1].Type)
	assert.Equal(t, int64(-300), txs[1].Amount)
}
