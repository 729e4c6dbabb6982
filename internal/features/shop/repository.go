// repository.go — catalog and purchase persistence. A purchase is one
// transaction: account row lock (serializes purchases per user), level
// check, debit, purchase upsert and the category effect. Any failing
// step rolls the whole unit back.
package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
	"github.com/pilot2254/contrast-bot-sub000/internal/db/postgres"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/economy"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/levels"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/safe"
)

const itemColumns = `id, name, description, category, base_price, max_level, price_multiplier, effect_value, is_active, created_at`

// Repository stores shop data and composes the purchase effects.
type Repository struct {
	db      *pgxpool.Pool
	economy *economy.Repository
	safes   *safe.Repository
	levels  *levels.Repository
}

// NewRepository creates a shop repository.
func NewRepository(db *pgxpool.Pool, economyRepo *economy.Repository, safeRepo *safe.Repository, levelsRepo *levels.Repository) *Repository {
	return &Repository{db: db, economy: economyRepo, safes: safeRepo, levels: levelsRepo}
}

// ListItems returns the active catalog.
func (r *Repository) ListItems(ctx context.Context) ([]*ShopItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+` FROM shop_items WHERE is_active ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query shop items: %w", err)
	}
	defer rows.Close()

	var items []*ShopItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetItem fetches one catalog row, active or not.
func (r *Repository) GetItem(ctx context.Context, itemID int64) (*ShopItem, error) {
	row := r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM shop_items WHERE id = $1`, itemID)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// GetPurchase returns the user's level in an item (nil when never bought).
func (r *Repository) GetPurchase(ctx context.Context, userID string, itemID int64) (*UserPurchase, error) {
	var p UserPurchase
	err := r.db.QueryRow(ctx, `
		SELECT user_id, item_id, level, price_paid, purchased_at
		FROM user_purchases WHERE user_id = $1 AND item_id = $2
	`, userID, itemID).Scan(&p.UserID, &p.ItemID, &p.Level, &p.PricePaid, &p.PurchasedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// Purchase buys the next level of an item as one atomic unit.
func (r *Repository) Purchase(ctx context.Context, userID string, itemID int64) (*PurchaseResult, error) {
	var result *PurchaseResult

	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+itemColumns+` FROM shop_items WHERE id = $1`, itemID)
		item, err := scanItem(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return common.ErrItemNotFound
			}
			return err
		}
		if !item.IsActive {
			return common.ErrItemInactive
		}

		// The account row always exists once a user touched the bot;
		// locking it serializes every purchase (and balance mutation)
		// for this user, covering the level read below.
		var balance int64
		if err := tx.QueryRow(ctx,
			`SELECT balance FROM accounts WHERE user_id = $1 FOR UPDATE`, userID,
		).Scan(&balance); err != nil {
			return fmt.Errorf("lock account: %w", err)
		}

		var currentLevel int
		err = tx.QueryRow(ctx, `
			SELECT level FROM user_purchases WHERE user_id = $1 AND item_id = $2
		`, userID, itemID).Scan(&currentLevel)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("read purchase level: %w", err)
		}
		if currentLevel >= item.MaxLevel {
			return common.ErrItemMaxLevel
		}

		nextLevel := currentLevel + 1
		price := item.Price(nextLevel)

		desc := fmt.Sprintf("Purchased %s (level %d)", item.Name, nextLevel)
		if err := r.economy.DebitTx(ctx, tx, userID, price, economy.TxTypeShopPurchase, desc, nil); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO user_purchases (user_id, item_id, level, price_paid)
			VALUES ($1, $2, 1, $3)
			ON CONFLICT (user_id, item_id) DO UPDATE
			SET level = user_purchases.level + 1,
			    price_paid = user_purchases.price_paid + $3
		`, userID, itemID, price); err != nil {
			return fmt.Errorf("upsert purchase: %w", err)
		}

		if err := r.applyEffect(ctx, tx, userID, item); err != nil {
			return err
		}

		result = &PurchaseResult{Item: item, NewLevel: nextLevel, Price: price}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyEffect runs the category side effect for one purchased level.
func (r *Repository) applyEffect(ctx context.Context, tx pgx.Tx, userID string, item *ShopItem) error {
	switch item.Category {
	case CategorySafe:
		return r.safes.UpgradeCapacityTx(ctx, tx, userID, item.EffectValue)
	case CategoryXP:
		_, err := r.levels.AddXPTx(ctx, tx, userID, item.EffectValue)
		return err
	case CategoryTransfer:
		// Cosmetic flag; no functional effect yet.
		return nil
	default:
		return fmt.Errorf("unknown item category %q", item.Category)
	}
}

// CreateItem inserts a catalog row (admin path).
func (r *Repository) CreateItem(ctx context.Context, item *ShopItem) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO shop_items (name, description, category, base_price, max_level, price_multiplier, effect_value, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		RETURNING id
	`, item.Name, item.Description, item.Category, item.BasePrice, item.MaxLevel, item.PriceMultiplier, item.EffectValue).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create shop item: %w", err)
	}
	return id, nil
}

// SetActive toggles a catalog row (admin path).
func (r *Repository) SetActive(ctx context.Context, itemID int64, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE shop_items SET is_active = $2 WHERE id = $1`, itemID, active)
	if err != nil {
		return fmt.Errorf("set item active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrItemNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (*ShopItem, error) {
	var i ShopItem
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.Category, &i.BasePrice,
		&i.MaxLevel, &i.PriceMultiplier, &i.EffectValue, &i.IsActive, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
