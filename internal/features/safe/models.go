// Package safe implements the capacity-bounded sub-ledger. Coins in the
// safe are out of the wagerable main balance; deposits and withdrawals
// move the same amount between the two sides in one atomic unit.
package safe

import "time"

// DefaultCapacity is the starting safe capacity. Raised only by shop
// purchases (safe-category items).
const DefaultCapacity int64 = 5_000

// Safe is the per-user sub-ledger row. balance ≤ capacity always.
type Safe struct {
	UserID    string    `db:"user_id"`
	Balance   int64     `db:"balance"`
	Capacity  int64     `db:"capacity"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
