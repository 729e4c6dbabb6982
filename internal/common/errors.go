// Package common — errors.go defines the sentinel errors shared by all
// feature modules. Handlers match on these to pick a user-facing reply;
// anything else is treated as a storage failure and answered generically.
package common

import "errors"

// Economy errors (balances, transfers, ledger)
var (
	// ErrInsufficientFunds — the account balance cannot cover the amount
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidAmount — zero or negative amount
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrAmountTooLarge — amount above the sanity ceiling
	ErrAmountTooLarge = errors.New("amount exceeds the allowed maximum")
	// ErrSelfTransfer — sender and recipient are the same user
	ErrSelfTransfer = errors.New("cannot transfer coins to yourself")
	// ErrAccountNotFound — no account row for the user
	ErrAccountNotFound = errors.New("account not found")
)

// Gambling errors
var (
	// ErrBetTooLarge — bet above the per-bet ceiling
	ErrBetTooLarge = errors.New("bet exceeds the per-bet maximum")
	// ErrGameOnCooldown — game-specific cooldown still running
	ErrGameOnCooldown = errors.New("game is on cooldown")
	// ErrNothingToStake — all-in game invoked with an empty balance
	ErrNothingToStake = errors.New("nothing to stake")
)

// Safe errors
var (
	// ErrSafeCapacityExceeded — deposit would push the safe over capacity
	ErrSafeCapacityExceeded = errors.New("deposit exceeds safe capacity")
	// ErrSafeInsufficient — withdrawal larger than the safe balance
	ErrSafeInsufficient = errors.New("not enough coins in the safe")
)

// Shop errors
var (
	// ErrItemNotFound — unknown or missing catalog item
	ErrItemNotFound = errors.New("shop item not found")
	// ErrItemInactive — item exists but is disabled
	ErrItemInactive = errors.New("shop item is not available")
	// ErrItemMaxLevel — purchase attempted at the item's max level
	ErrItemMaxLevel = errors.New("item is already at max level")
)

// Reputation errors
var (
	// ErrSelfReputation — giving reputation to yourself
	ErrSelfReputation = errors.New("cannot give reputation to yourself")
	// ErrReputationDailyLimit — daily give limit reached
	ErrReputationDailyLimit = errors.New("daily reputation limit reached")
	// ErrReputationPairCooldown — same recipient within the cooldown
	ErrReputationPairCooldown = errors.New("you already gave reputation to this user recently")
)

// Admin errors
var (
	// ErrNotAdmin — user is not a configured administrator
	ErrNotAdmin = errors.New("you are not an administrator")
	// ErrWrongPassword — admin unlock password did not match
	ErrWrongPassword = errors.New("wrong password")
	// ErrSessionExpired — elevated session expired, unlock again
	ErrSessionExpired = errors.New("admin session expired, unlock again")
)
