package shop

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
	"github.com/pilot2254/contrast-bot-sub000/internal/features/levels"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/safe"
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

func testRepo(pool *pgxpool.Pool) (*Repository, *safe.Repository) {
	economyRepo := economy.NewRepository(pool)
	safeRepo := safe.NewRepository(pool, economyRepo)
	return NewRepository(pool, economyRepo, safeRepo, levels.NewRepository(pool)), safeRepo
}

// seedAccount creates a throwaway account and removes it afterwards.
func seedAccount(t *testing.T, pool *pgxpool.Pool, balance int64) string {
	t.Helper()

	userID := fmt.Sprintf("test-%d", time.Now().UnixNano())
	_, err := accounts.NewRepository(pool).GetOrCreate(context.Background(), userID, "tester", balance)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx := context.Background()
		pool.Exec(ctx, `DELETE FROM user_purchases WHERE user_id = $1`, userID)
		pool.Exec(ctx, `DELETE FROM transactions WHERE user_id = $1`, userID)
		pool.Exec(ctx, `DELETE FROM safes WHERE user_id = $1`, userID)
		pool.Exec(ctx, `DELETE FROM accounts WHERE user_id = $1`, userID)
	})
	return userID
}

// seedItem creates a throwaway catalog item and removes it afterwards.
func seedItem(t *testing.T, pool *pgxpool.Pool, repo *Repository, item *ShopItem) int64 {
	t.Helper()

	id, err := repo.CreateItem(context.Background(), item)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx := context.Background()
		pool.Exec(ctx, `DELETE FROM user_purchases WHERE item_id = $1`, id)
		pool.Exec(ctx, `DELETE FROM shop_items WHERE id = $1`, id)
	})
	return id
}

func TestPurchaseProgression(t *testing.T) {
	pool := testPool(t)
	repo, safeRepo := testRepo(pool)
	ctx := context.Background()

	userID := seedAccount(t, pool, 1000)
	itemID := seedItem(t, pool, repo, &ShopItem{
		Name:            "Vault Plates",
		Category:        CategorySafe,
		BasePrice:       100,
		MaxLevel:        2,
		PriceMultiplier: 2.0,
		EffectValue:     500,
	})

	// Each purchase buys the next level at the geometric price.
	res, err := repo.Purchase(ctx, userID, itemID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.NewLevel)
	assert.Equal(t, int64(100), res.Price)

	res, err = repo.Purchase(ctx, userID, itemID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.NewLevel)
	assert.Equal(t, int64(200), res.Price)

	p, err := repo.GetPurchase(ctx, userID, itemID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, int64(300), p.PricePaid)

	// The safe effect applied once per level.
	s, err := safeRepo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, safe.DefaultCapacity+1000, s.Capacity)
}

func TestPurchaseMaxLevelRejected(t *testing.T) {
	pool := testPool(t)
	repo, _ := testRepo(pool)
	ctx := context.Background()

	userID := seedAccount(t, pool, 1000)
	itemID := seedItem(t, pool, repo, &ShopItem{
		Name:            "One Shot",
		Category:        CategoryTransfer,
		BasePrice:       100,
		MaxLevel:        1,
		PriceMultiplier: 1.0,
	})

	_, err := repo.Purchase(ctx, userID, itemID)
	require.NoError(t, err)

	// At max level the purchase is rejected and nothing changes.
	_, err = repo.Purchase(ctx, userID, itemID)
	assert.ErrorIs(t, err, common.ErrItemMaxLevel)

	acc, err := accounts.NewRepository(pool).Get(ctx, pool, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(900), acc.Balance)

	p, err := repo.GetPurchase(ctx, userID, itemID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, int64(100), p.PricePaid)
}

func TestPurchaseInsufficientFundsRollsBack(t *testing.T) {
	pool := testPool(t)
	repo, _ := testRepo(pool)
	ctx := context.Background()

	userID := seedAccount(t, pool, 50)
	itemID := seedItem(t, pool, repo, &ShopItem{
		Name:            "Too Rich For You",
		Category:        CategoryTransfer,
		BasePrice:       100,
		MaxLevel:        1,
		PriceMultiplier: 1.0,
	})

	_, err := repo.Purchase(ctx, userID, itemID)
	assert.ErrorIs(t, err, common.ErrInsufficientFunds)

	p, err := repo.GetPurchase(ctx, userID, itemID)
	require.NoError(t, err)
	assert.Nil(t, p)
}
