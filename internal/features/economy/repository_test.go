package economy

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
	repo := accounts.NewRepository(pool)
	_, err := repo.GetOrCreate(context.Background(), userID, "tester", balance)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx := context.Background()
		pool.Exec(ctx, `DELETE FROM transactions WHERE user_id = $1`, userID)
		pool.Exec(ctx, `DELETE FROM accounts WHERE user_id = $1`, userID)
	})
	return userID
}

func TestRepositoryCreditDebit(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	userID := seedAccount(t, pool, 0)

	require.NoError(t, repo.Credit(ctx, userID, 500, TxTypeBonus, "seed", nil))
	require.NoError(t, repo.Debit(ctx, userID, 200, TxTypeWork, "spend", nil))

	accRepo := accounts.NewRepository(pool)
	acc, err := accRepo.Get(ctx, pool, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(300), acc.Balance)
	assert.Equal(t, int64(500), acc.TotalEarned)
	assert.Equal(t, int64(200), acc.TotalSpent)

	// Each mutation left exactly one ledger row, newest first.
	txs, err := repo.History(ctx, userID, 10, "")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, int64(-200), txs[0].Amount)
	assert.Equal(t, int64(500), txs[1].Amount)
}

func TestRepositoryDebitInsufficient(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	userID := seedAccount(t, pool, 100)

	err := repo.Debit(ctx, userID, 101, TxTypeWork, "too much", nil)
	assert.ErrorIs(t, err, common.ErrInsufficientFunds)

	// The failed debit left no ledger row; only the seeded starting
	// balance is recorded.
	txs, err := repo.History(ctx, userID, 10, "")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, TxTypeBonus, txs[0].Type)
	assert.Equal(t, int64(100), txs[0].Amount)
}

func TestRepositoryTransfer(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	fromID := seedAccount(t, pool, 1000)
	toID := seedAccount(t, pool, 0)

	require.NoError(t, repo.Transfer(ctx, fromID, toID, 400))

	accRepo := accounts.NewRepository(pool)
	from, err := accRepo.Get(ctx, pool, fromID)
	require.NoError(t, err)
	to, err := accRepo.Get(ctx, pool, toID)
	require.NoError(t, err)
	assert.Equal(t, int64(600), from.Balance)
	assert.Equal(t, int64(400), to.Balance)

	// Both legs are ledgered and cross-referenced.
	fromTxs, err := repo.History(ctx, fromID, 10, TxTypeTransferSent)
	require.NoError(t, err)
	require.Len(t, fromTxs, 1)
	require.NotNil(t, fromTxs[0].RelatedUserID)
	assert.Equal(t, toID, *fromTxs[0].RelatedUserID)

	toTxs, err := repo.History(ctx, toID, 10, TxTypeTransferReceived)
	require.NoError(t, err)
	require.Len(t, toTxs, 1)
	require.NotNil(t, toTxs[0].RelatedUserID)
	assert.Equal(t, fromID, *toTxs[0].RelatedUserID)
}

func TestRepositoryTransferInsufficientRollsBack(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	fromID := seedAccount(t, pool, 50)
	toID := seedAccount(t, pool, 0)

	err := repo.Transfer(ctx, fromID, toID, 100)
	assert.ErrorIs(t, err, common.ErrInsufficientFunds)

	accRepo := accounts.NewRepository(pool)
	to, err := accRepo.Get(ctx, pool, toID)
	require.NoError(t, err)
	assert.Zero(t, to.Balance)
}
