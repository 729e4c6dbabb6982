// Package gambling implements the wager engine shared by all chance
// games: bet placement, win settlement and aggregate statistics. The
// games themselves (coinflip, dice, slots, roulette, RPS, number guess,
// russian roulette) are pure payout policies layered on top.
package gambling

import "time"

// Stats is the per-user gambling aggregate. The first row is created on
// the first bet; every placement and settlement updates it.
//
// totalLost is accumulated per settlement as max(0, bet − won) — never
// recomputed from lifetime totals, which would double count across
// sessions.
type Stats struct {
	UserID      string    `db:"user_id"`
	TotalBet    int64     `db:"total_bet"`
	TotalWon    int64     `db:"total_won"`
	TotalLost   int64     `db:"total_lost"`
	GamesPlayed int64     `db:"games_played"`
	BiggestWin  int64     `db:"biggest_win"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Game type tags recorded in bet/win descriptions.
const (
	GameCoinflip        = "coinflip"
	GameDice            = "dice"
	GameSlots           = "slots"
	GameRoulette        = "roulette"
	GameRPS             = "rps"
	GameNumberGuess     = "numberguess"
	GameRussianRoulette = "russianroulette"
)

// PerBetCeiling bounds a single bet on every game.
const PerBetCeiling int64 = 1_000_000

// RussianRouletteCooldown is the per-user gap between plays, enforced in
// process memory independently of the generic command rate limiter.
const RussianRouletteCooldown = 5 * time.Minute
