package gambling

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiceSumMultiplier(t *testing.T) {
	tests := []struct {
		name  string
		dice  int
		sum   int
		want  int64
	}{
		{"one die any face", 1, 4, 6},
		{"one die out of range", 1, 7, 0},
		{"two dice snake eyes", 2, 2, 36},
		{"two dice seven", 2, 7, 6},
		{"two dice boxcars", 2, 12, 36},
		{"two dice unreachable", 2, 13, 0},
		{"three dice minimum", 3, 3, 216},
		{"three dice middle", 3, 10, 30},
		{"three dice eleven", 3, 11, 30},
		{"three dice maximum", 3, 18, 216},
		{"three dice unreachable", 3, 2, 0},
		{"zero dice", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiceSumMultiplier(tt.dice, tt.sum))
		})
	}
}

func TestDiceSumTableSymmetry(t *testing.T) {
	for sum := 2; sum <= 12; sum++ {
		assert.Equal(t, DiceSumMultiplier(2, sum), DiceSumMultiplier(2, 14-sum), "2 dice, sum %d", sum)
	}
	for sum := 3; sum <= 18; sum++ {
		assert.Equal(t, DiceSumMultiplier(3, sum), DiceSumMultiplier(3, 21-sum), "3 dice, sum %d", sum)
	}
}

func TestDicePayout(t *testing.T) {
	tests := []struct {
		name    string
		dice    []int
		betKind string
		target  int
		want    int64
	}{
		{"sum hit pays table", []int{1, 1}, DiceBetSum, 2, 360},
		{"sum miss", []int{1, 2}, DiceBetSum, 2, 0},
		{"low two dice", []int{2, 3}, DiceBetLow, 0, 20},
		{"two dice seven loses low", []int{3, 4}, DiceBetLow, 0, 0},
		{"two dice seven loses high", []int{3, 4}, DiceBetHigh, 0, 0},
		{"high two dice", []int{5, 6}, DiceBetHigh, 0, 20},
		{"single die low", []int{3}, DiceBetLow, 0, 20},
		{"single die high", []int{4}, DiceBetHigh, 0, 20},
		{"three dice ten is low", []int{3, 3, 4}, DiceBetLow, 0, 20},
		{"three dice ten not high", []int{3, 3, 4}, DiceBetHigh, 0, 0},
		{"three dice eleven is high", []int{3, 4, 4}, DiceBetHigh, 0, 20},
		{"three dice eleven not low", []int{3, 4, 4}, DiceBetLow, 0, 0},
		{"odd", []int{2, 3}, DiceBetOdd, 0, 20},
		{"even", []int{2, 4}, DiceBetEven, 0, 20},
		{"odd miss", []int{2, 4}, DiceBetOdd, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DicePayout(tt.dice, 10, tt.betKind, tt.target))
		})
	}
}

func TestDiceLowHighSplit(t *testing.T) {
	// Every reachable sum lands on exactly one side, except the two-dice
	// middle sum 7 which loses both bets.
	for sum := 1; sum <= 6; sum++ {
		assert.NotEqual(t, diceIsLow(1, sum), diceIsHigh(1, sum), "1 die, sum %d", sum)
	}
	for sum := 2; sum <= 12; sum++ {
		if sum == 7 {
			assert.False(t, diceIsLow(2, sum))
			assert.False(t, diceIsHigh(2, sum))
			continue
		}
		assert.NotEqual(t, diceIsLow(2, sum), diceIsHigh(2, sum), "2 dice, sum %d", sum)
	}
	for sum := 3; sum <= 18; sum++ {
		assert.NotEqual(t, diceIsLow(3, sum), diceIsHigh(3, sum), "3 dice, sum %d", sum)
	}
}

func TestNumberGuessMultiplier(t *testing.T) {
	assert.Equal(t, int64(1), NumberGuessMultiplier(2))   // floor(1.9)
	assert.Equal(t, int64(9), NumberGuessMultiplier(10))  // floor(9.5)
	assert.Equal(t, int64(95), NumberGuessMultiplier(100))
}

func TestRoulettePayout(t *testing.T) {
	tests := []struct {
		name    string
		pocket  int
		betKind string
		number  int
		want    int64
	}{
		{"red hit", 1, RouletteBetRed, 0, 20},
		{"black hit", 2, RouletteBetBlack, 0, 20},
		{"zero loses red", 0, RouletteBetRed, 0, 0},
		{"zero loses black", 0, RouletteBetBlack, 0, 0},
		{"zero loses odd", 0, RouletteBetOdd, 0, 0},
		{"zero loses even", 0, RouletteBetEven, 0, 0},
		{"zero loses low", 0, RouletteBetLow, 0, 0},
		{"zero loses high", 0, RouletteBetHigh, 0, 0},
		{"straight number", 17, RouletteBetNumber, 17, 360},
		{"straight zero", 0, RouletteBetNumber, 0, 360},
		{"number miss", 16, RouletteBetNumber, 17, 0},
		{"high boundary", 19, RouletteBetHigh, 0, 20},
		{"low boundary", 18, RouletteBetLow, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoulettePayout(tt.pocket, 10, tt.betKind, tt.number))
		})
	}
}

func TestRPSPayouts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// Every combination must resolve to exactly 0, bet or 2×bet, and a
	// tie always refunds.
	for i := 0; i < 200; i++ {
		for _, choice := range []string{RPSRock, RPSPaper, RPSScissors} {
			botChoice, win := RPS(rng, 10, choice)
			switch {
			case botChoice == choice:
				assert.Equal(t, int64(10), win)
			case rpsBeats[choice] == botChoice:
				assert.Equal(t, int64(20), win)
			default:
				assert.Zero(t, win)
			}
		}
	}
}

func TestRussianRouletteMultiplier(t *testing.T) {
	wants := map[int]int64{1: 2, 2: 4, 3: 6, 4: 8, 5: 10}
	for bullets, want := range wants {
		assert.Equal(t, want, RussianRouletteMultiplier(bullets))
	}
	assert.Zero(t, RussianRouletteMultiplier(0))
	assert.Zero(t, RussianRouletteMultiplier(6))
}

func TestRussianRouletteSurvivalOdds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	// With 5 bullets only one chamber of six is empty; survival must
	// still be possible but rare.
	survived := 0
	for i := 0; i < 6000; i++ {
		if RussianRouletteSurvives(rng, 5) {
			survived++
		}
	}
	assert.InDelta(t, 1000, survived, 200)

	// One bullet: five of six chambers survive.
	survived = 0
	for i := 0; i < 6000; i++ {
		if RussianRouletteSurvives(rng, 1) {
			survived++
		}
	}
	assert.InDelta(t, 5000, survived, 200)
}

func TestCoinflipPaysDouble(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	sawWin, sawLoss := false, false
	for i := 0; i < 100; i++ {
		result, win := Coinflip(rng, 10, CoinHeads)
		require.Contains(t, []string{CoinHeads, CoinTails}, result)
		if result == CoinHeads {
			assert.Equal(t, int64(20), win)
			sawWin = true
		} else {
			assert.Zero(t, win)
			sawLoss = true
		}
	}
	assert.True(t, sawWin)
	assert.True(t, sawLoss)
}
