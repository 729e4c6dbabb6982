package accounts

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func newTestUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()

	userID := fmt.Sprintf("test-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		ctx := context.Background()
		pool.Exec(ctx, `DELETE FROM transactions WHERE user_id = $1`, userID)
		pool.Exec(ctx, `DELETE FROM accounts WHERE user_id = $1`, userID)
	})
	return userID
}

func countLedger(t *testing.T, pool *pgxpool.Pool, userID string) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestGetOrCreateSeedsLedger(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	userID := newTestUser(t, pool)

	acc, err := repo.GetOrCreate(ctx, userID, "tester", 250)
	require.NoError(t, err)
	assert.Equal(t, int64(250), acc.Balance)
	assert.Equal(t, int64(250), acc.TotalEarned)

	// The starting balance is replayable from the ledger.
	var txType string
	var amount int64
	err = pool.QueryRow(ctx,
		`SELECT type, amount FROM transactions WHERE user_id = $1`, userID,
	).Scan(&txType, &amount)
	require.NoError(t, err)
	assert.Equal(t, "bonus", txType)
	assert.Equal(t, int64(250), amount)

	// Repeat calls are idempotent: no second seed row.
	acc, err = repo.GetOrCreate(ctx, userID, "renamed", 250)
	require.NoError(t, err)
	assert.Equal(t, int64(250), acc.Balance)
	assert.Equal(t, "renamed", acc.DisplayName)
	assert.Equal(t, 1, countLedger(t, pool, userID))

	// An empty supplied name keeps the stored one.
	acc, err = repo.GetOrCreate(ctx, userID, "", 250)
	require.NoError(t, err)
	assert.Equal(t, "renamed", acc.DisplayName)
}

func TestGetOrCreateZeroStart(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	userID := newTestUser(t, pool)

	acc, err := repo.GetOrCreate(ctx, userID, "tester", 0)
	require.NoError(t, err)
	assert.Zero(t, acc.Balance)
	assert.Zero(t, acc.TotalEarned)
	assert.Zero(t, countLedger(t, pool, userID))
}
