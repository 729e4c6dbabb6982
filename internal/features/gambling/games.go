// games.go — pure payout policies. Nothing here touches storage; each
// function maps a random outcome to a win amount for the engine to
// settle. All randomness comes in through *rand.Rand so tests can force
// draws.
package gambling

import (
	"math/rand"
)

// --- Coinflip -------------------------------------------------------------

// CoinflipSides are the two outcomes.
const (
	CoinHeads = "heads"
	CoinTails = "tails"
)

// Coinflip flips the coin and pays 2× the bet on a correct call.
func Coinflip(rng *rand.Rand, bet int64, call string) (result string, win int64) {
	result = CoinHeads
	if rng.Intn(2) == 1 {
		result = CoinTails
	}
	if call == result {
		win = bet * 2
	}
	return result, win
}

// --- Dice -----------------------------------------------------------------

// Dice bet kinds.
const (
	DiceBetSum  = "sum" // exact sum of the rolled dice
	DiceBetLow  = "low"
	DiceBetHigh = "high"
	DiceBetOdd  = "odd"
	DiceBetEven = "even"
)

// diceSumPayouts2 — multipliers for exact 2-dice sums. Mid sums pay
// little, tail sums pay up to 36×.
var diceSumPayouts2 = map[int]int64{
	2: 36, 3: 18, 4: 12, 5: 9, 6: 7, 7: 6, 8: 7, 9: 9, 10: 12, 11: 18, 12: 36,
}

// diceSumPayouts3 — multipliers for exact 3-dice sums, 30×–216×.
var diceSumPayouts3 = map[int]int64{
	3: 216, 4: 150, 5: 100, 6: 75, 7: 60, 8: 45, 9: 36, 10: 30,
	11: 30, 12: 36, 13: 45, 14: 60, 15: 75, 16: 100, 17: 150, 18: 216,
}

// DiceSumMultiplier returns the multiplier for betting on an exact sum
// with the given number of dice (1–3), 0 when the sum is unreachable.
func DiceSumMultiplier(diceCount, sum int) int64 {
	switch diceCount {
	case 1:
		if sum >= 1 && sum <= 6 {
			return 6
		}
	case 2:
		return diceSumPayouts2[sum]
	case 3:
		return diceSumPayouts3[sum]
	}
	return 0
}

// RollDice rolls n six-sided dice.
func RollDice(rng *rand.Rand, n int) []int {
	dice := make([]int, n)
	for i := range dice {
		dice[i] = rng.Intn(6) + 1
	}
	return dice
}

// diceIsLow / diceIsHigh split the sum range in half. 1 and 3 dice have
// an even number of reachable sums so the halves meet exactly; with 2
// dice the middle sum 7 belongs to neither side and loses both bets.
func diceIsLow(diceCount, sum int) bool {
	switch diceCount {
	case 1:
		return sum <= 3
	case 2:
		return sum < 7
	case 3:
		return sum <= 10
	}
	return false
}

func diceIsHigh(diceCount, sum int) bool {
	switch diceCount {
	case 1:
		return sum >= 4
	case 2:
		return sum > 7
	case 3:
		return sum >= 11
	}
	return false
}

// DicePayout evaluates a dice bet against rolled dice. betKind is one of
// the DiceBet* constants; target is only used for sum bets. Flat bets
// (low/high/odd/even) pay 2×.
func DicePayout(dice []int, bet int64, betKind string, target int) int64 {
	sum := 0
	for _, d := range dice {
		sum += d
	}

	switch betKind {
	case DiceBetSum:
		if sum == target {
			return bet * DiceSumMultiplier(len(dice), sum)
		}
	case DiceBetLow:
		if diceIsLow(len(dice), sum) {
			return bet * 2
		}
	case DiceBetHigh:
		if diceIsHigh(len(dice), sum) {
			return bet * 2
		}
	case DiceBetOdd:
		if sum%2 == 1 {
			return bet * 2
		}
	case DiceBetEven:
		if sum%2 == 0 {
			return bet * 2
		}
	}
	return 0
}

// --- Number guess ---------------------------------------------------------

// NumberGuessMultiplier is floor(range × 0.95): the win chance is
// 1/range, so the 0.95 factor is the deliberate house edge.
func NumberGuessMultiplier(rangeSize int) int64 {
	return int64(float64(rangeSize) * 0.95)
}

// NumberGuess draws 1..rangeSize and pays bet × multiplier on a hit.
func NumberGuess(rng *rand.Rand, bet int64, rangeSize, guess int) (drawn int, win int64) {
	drawn = rng.Intn(rangeSize) + 1
	if drawn == guess {
		win = bet * NumberGuessMultiplier(rangeSize)
	}
	return drawn, win
}

// --- Roulette -------------------------------------------------------------

// Roulette bet kinds (European wheel, 0–36).
const (
	RouletteBetRed    = "red"
	RouletteBetBlack  = "black"
	RouletteBetOdd    = "odd"
	RouletteBetEven   = "even"
	RouletteBetHigh   = "high" // 19–36
	RouletteBetLow    = "low"  // 1–18
	RouletteBetNumber = "number"
)

// rouletteReds — red pockets on a European wheel.
var rouletteReds = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true,
	16: true, 18: true, 19: true, 21: true, 23: true, 25: true, 27: true,
	30: true, 32: true, 34: true, 36: true,
}

// RouletteSpin draws one pocket.
func RouletteSpin(rng *rand.Rand) int {
	return rng.Intn(37)
}

// RoulettePayout evaluates one spin. Outside bets pay 2×, a straight
// number pays 36×. Zero loses every outside bet.
func RoulettePayout(pocket int, bet int64, betKind string, number int) int64 {
	switch betKind {
	case RouletteBetRed:
		if rouletteReds[pocket] {
			return bet * 2
		}
	case RouletteBetBlack:
		if pocket != 0 && !rouletteReds[pocket] {
			return bet * 2
		}
	case RouletteBetOdd:
		if pocket != 0 && pocket%2 == 1 {
			return bet * 2
		}
	case RouletteBetEven:
		if pocket != 0 && pocket%2 == 0 {
			return bet * 2
		}
	case RouletteBetHigh:
		if pocket >= 19 {
			return bet * 2
		}
	case RouletteBetLow:
		if pocket >= 1 && pocket <= 18 {
			return bet * 2
		}
	case RouletteBetNumber:
		if pocket == number {
			return bet * 36
		}
	}
	return 0
}

// --- Rock paper scissors --------------------------------------------------

// RPS choices.
const (
	RPSRock     = "rock"
	RPSPaper    = "paper"
	RPSScissors = "scissors"
)

var rpsChoices = []string{RPSRock, RPSPaper, RPSScissors}

var rpsBeats = map[string]string{
	RPSRock:     RPSScissors,
	RPSPaper:    RPSRock,
	RPSScissors: RPSPaper,
}

// RPS plays one round. A win pays 2×, a tie refunds the stake (net
// zero), a loss forfeits it.
func RPS(rng *rand.Rand, bet int64, choice string) (botChoice string, win int64) {
	botChoice = rpsChoices[rng.Intn(3)]
	switch {
	case choice == botChoice:
		win = bet // refund
	case rpsBeats[choice] == botChoice:
		win = bet * 2
	}
	return botChoice, win
}

// --- Russian roulette -----------------------------------------------------

// russianRouletteMultipliers — payout multiplier per bullet count loaded
// into the six chambers.
var russianRouletteMultipliers = map[int]int64{
	1: 2, 2: 4, 3: 6, 4: 8, 5: 10,
}

// RussianRouletteMultiplier returns the multiplier for a bullet count,
// 0 when the count is outside 1..5.
func RussianRouletteMultiplier(bullets int) int64 {
	return russianRouletteMultipliers[bullets]
}

// RussianRouletteSurvives spins the cylinder: bullets of the six
// chambers are loaded, survival means the hammer found an empty one.
func RussianRouletteSurvives(rng *rand.Rand, bullets int) bool {
	return rng.Intn(6) >= bullets
}
