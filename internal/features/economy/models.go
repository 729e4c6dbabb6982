// Package economy implements the credit/debit primitives, the
// append-only transaction ledger and the leaderboards. Every balance
// mutation anywhere in the bot flows through this package.
package economy

import "time"

// Transaction is one ledger entry. Rows are append-only: never mutated
// or deleted after insert. Replaying a user's amounts from zero must
// reproduce the current balance (safe movements appear as paired
// transfer entries on the account side).
type Transaction struct {
	ID            int64     `db:"id"`
	UserID        string    `db:"user_id"`
	Type          string    `db:"type"`
	Amount        int64     `db:"amount"` // signed: positive = credit, negative = debit
	Description   string    `db:"description"`
	RelatedUserID *string   `db:"related_user_id"` // transfer counterparty
	CreatedAt     time.Time `db:"created_at"`
}

// Ledger entry types.
const (
	TxTypeDaily            = "daily"
	TxTypeWeekly           = "weekly"
	TxTypeMonthly          = "monthly"
	TxTypeYearly           = "yearly"
	TxTypeTransferSent     = "transfer_sent"
	TxTypeTransferReceived = "transfer_received"
	TxTypeShopPurchase     = "shop_purchase"
	TxTypeGamblingBet      = "gambling_bet"
	TxTypeGamblingWin      = "gambling_win"
	TxTypeAdminAdd         = "admin_add"
	TxTypeAdminRemove      = "admin_remove"
	TxTypeBonus            = "bonus"
	TxTypeWork             = "work"
)

// MaxTransactionAmount is the sanity ceiling on a single credit or debit.
// Rejects implausible/overflow-prone amounts on all normal paths; only
// the explicit Admin* variants may exceed it.
const MaxTransactionAmount int64 = 100_000_000

// Leaderboard metrics, read off the accounts table.
const (
	MetricBalance = "balance"
	MetricEarned  = "earned"
	MetricSpent   = "spent"
)

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank        int
	UserID      string
	DisplayName string
	Value       int64
}
