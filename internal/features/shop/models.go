// Package shop implements the leveled item catalog. Items are bought
// level by level with geometric price scaling; each category applies a
// different side effect on purchase.
package shop

import (
	"math"
	"time"
)

// Item categories (closed set).
const (
	CategorySafe     = "safe"     // raises safe capacity
	CategoryXP       = "xp"       // grants XP directly
	CategoryTransfer = "transfer" // cosmetic, no functional effect yet
)

// ShopItem is a catalog row. Admin managed; immutable once purchased
// against (price history derives from purchase records, not from
// mutating catalog rows).
type ShopItem struct {
	ID              int64     `db:"id"`
	Name            string    `db:"name"`
	Description     string    `db:"description"`
	Category        string    `db:"category"`
	BasePrice       int64     `db:"base_price"`
	MaxLevel        int       `db:"max_level"`
	PriceMultiplier float64   `db:"price_multiplier"`
	EffectValue     int64     `db:"effect_value"`
	IsActive        bool      `db:"is_active"`
	CreatedAt       time.Time `db:"created_at"`
}

// UserPurchase tracks one user's level in one item.
type UserPurchase struct {
	UserID      string    `db:"user_id"`
	ItemID      int64     `db:"item_id"`
	Level       int       `db:"level"`
	PricePaid   int64     `db:"price_paid"` // cumulative
	PurchasedAt time.Time `db:"purchased_at"`
}

// PurchaseResult is returned on a successful purchase.
type PurchaseResult struct {
	Item     *ShopItem
	NewLevel int
	Price    int64
}

// PriceForLevel computes the price of the Nth level:
// floor(basePrice × priceMultiplier^(N−1)). The same function backs both
// catalog previews and the actual charge — they must never diverge.
func PriceForLevel(basePrice int64, multiplier float64, level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(math.Floor(float64(basePrice) * math.Pow(multiplier, float64(level-1))))
}

// Price computes the price of a given level of this item.
func (i *ShopItem) Price(level int) int64 {
	return PriceForLevel(i.BasePrice, i.PriceMultiplier, level)
}
