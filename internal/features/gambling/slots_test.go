package gambling

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedDraw returns scripted reel symbols in order.
func fixedDraw(symbols ...string) SlotDraw {
	i := 0
	return func(*rand.Rand) (string, string) {
		name := symbols[i%len(symbols)]
		i++
		return name, name
	}
}

func TestSpinSlotsTriples(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name    string
		reels   []string
		bet     int64
		want    int64
		jackpot bool
	}{
		{"cherry triple", []string{"cherry", "cherry", "cherry"}, 10, 20, false},
		{"diamond triple", []string{"diamond", "diamond", "diamond"}, 10, 500, false},
		{"jackpot triple", []string{SlotJackpotName, SlotJackpotName, SlotJackpotName}, 10, 1000, true},
		{"bell triple", []string{"bell", "bell", "bell"}, 100, 1000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := SpinSlots(rng, tt.bet, fixedDraw(tt.reels...))
			assert.Equal(t, tt.want, res.Win)
			assert.Equal(t, tt.jackpot, res.Jackpot)
		})
	}
}

func TestSpinSlotsPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name  string
		reels []string
		want  int64
	}{
		{"cherry pair adjacent", []string{"cherry", "cherry", "lemon"}, 10},
		{"cherry pair split", []string{"cherry", "lemon", "cherry"}, 10},
		{"grape pair trailing", []string{"lemon", "grape", "grape"}, 30},
		{"odd value floors", []string{"lemon", "lemon", "bell"}, 15}, // 10 × 3 / 2
		{"jackpot pair pays nothing", []string{SlotJackpotName, SlotJackpotName, "cherry"}, 0},
		{"no match", []string{"cherry", "lemon", "bell"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := SpinSlots(rng, 10, fixedDraw(tt.reels...))
			assert.Equal(t, tt.want, res.Win)
			assert.False(t, res.Jackpot)
		})
	}
}

func TestDefaultSlotDrawCoversTable(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	counts := map[string]int{}
	for i := 0; i < 20000; i++ {
		name, emoji := DefaultSlotDraw(rng)
		require.NotEmpty(t, emoji)
		counts[name]++
	}

	// Every table symbol and the jackpot layer must show up; common
	// symbols must dominate rare ones.
	for _, s := range SlotSymbols {
		assert.Greater(t, counts[s.Name], 0, s.Name)
	}
	assert.Greater(t, counts[SlotJackpotName], 0)
	assert.Greater(t, counts["cherry"], counts["diamond"])
}

func TestSlotWeightsSumToHundred(t *testing.T) {
	total := 0
	for _, s := range SlotSymbols {
		total += s.Weight
	}
	assert.Equal(t, 100, total)
}
