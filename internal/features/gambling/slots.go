// slots.go — the three-reel slot machine. Symbols are drawn from a
// weighted table with an independent jackpot layer on top of the normal
// distribution. The draw function is injectable so tests can force any
// grid.
package gambling

import "math/rand"

// SlotSymbol is one reel symbol with its weight (per-mille of the
// non-jackpot draw, weights sum to 100) and its three-of-a-kind payout
// multiplier.
type SlotSymbol struct {
	Emoji  string
	Name   string
	Weight int
	Value  int64
}

// SlotSymbols — the weighted table. Jackpot is NOT in this table; it is
// an independent 1%-per-reel layer checked before the weighted draw.
var SlotSymbols = []SlotSymbol{
	{Emoji: "🍒", Name: "cherry", Weight: 30, Value: 2},
	{Emoji: "🍋", Name: "lemon", Weight: 25, Value: 3},
	{Emoji: "🍊", Name: "orange", Weight: 20, Value: 4},
	{Emoji: "🍇", Name: "grape", Weight: 15, Value: 6},
	{Emoji: "🔔", Name: "bell", Weight: 8, Value: 10},
	{Emoji: "💎", Name: "diamond", Weight: 2, Value: 50},
}

// Jackpot symbol constants.
const (
	SlotJackpotName       = "jackpot"
	SlotJackpotEmoji      = "🎰"
	SlotJackpotChance     = 0.01 // per reel, independent of the table
	SlotJackpotMultiplier = 100
)

// SlotResult is the outcome of one spin.
type SlotResult struct {
	Reels   [3]string // symbol names
	Emojis  [3]string
	Win     int64
	Jackpot bool
}

// SlotDraw produces one reel symbol. Split out so tests can replace it.
type SlotDraw func(rng *rand.Rand) (name, emoji string)

// DefaultSlotDraw rolls the jackpot layer first, then the weighted table.
func DefaultSlotDraw(rng *rand.Rand) (string, string) {
	if rng.Float64() < SlotJackpotChance {
		return SlotJackpotName, SlotJackpotEmoji
	}

	roll := rng.Intn(100)
	for _, s := range SlotSymbols {
		if roll < s.Weight {
			return s.Name, s.Emoji
		}
		roll -= s.Weight
	}
	// Unreachable while weights sum to 100.
	last := SlotSymbols[len(SlotSymbols)-1]
	return last.Name, last.Emoji
}

// SpinSlots draws three reels and computes the payout:
// jackpot triple 100×, any other triple pays the symbol value, a pair
// pays half the symbol value floored. Jackpot pairs pay nothing on their
// own — the jackpot only counts as a triple.
func SpinSlots(rng *rand.Rand, bet int64, draw SlotDraw) SlotResult {
	if draw == nil {
		draw = DefaultSlotDraw
	}

	var res SlotResult
	for i := 0; i < 3; i++ {
		res.Reels[i], res.Emojis[i] = draw(rng)
	}

	res.Win = slotPayout(res.Reels, bet)
	res.Jackpot = res.Reels[0] == SlotJackpotName &&
		res.Reels[1] == SlotJackpotName && res.Reels[2] == SlotJackpotName
	return res
}

func slotPayout(reels [3]string, bet int64) int64 {
	if reels[0] == reels[1] && reels[1] == reels[2] {
		if reels[0] == SlotJackpotName {
			return bet * SlotJackpotMultiplier
		}
		return bet * symbolValue(reels[0])
	}

	// Pair: two matching symbols pay half the value, floored.
	var pair string
	switch {
	case reels[0] == reels[1] || reels[0] == reels[2]:
		pair = reels[0]
	case reels[1] == reels[2]:
		pair = reels[1]
	default:
		return 0
	}
	if pair == SlotJackpotName {
		return 0
	}
	return bet * symbolValue(pair) / 2
}

func symbolValue(name string) int64 {
	for _, s := range SlotSymbols {
		if s.Name == name {
			return s.Value
		}
	}
	return 0
}
