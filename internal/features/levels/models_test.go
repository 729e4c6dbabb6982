package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPForNextLevel(t *testing.T) {
	assert.Equal(t, int64(100), XPForNextLevel(0))
	assert.Equal(t, int64(155), XPForNextLevel(1))
	assert.Equal(t, int64(220), XPForNextLevel(2))
	assert.Equal(t, int64(1100), XPForNextLevel(10))
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{254, 1},
		{255, 2},
		{474, 2},
		{475, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForXP(tt.xp), "xp %d", tt.xp)
	}
}

func TestLevelForXPAgreesWithCurve(t *testing.T) {
	// Accumulating exactly the step costs must land on each boundary.
	var total int64
	for level := 0; level < 20; level++ {
		assert.Equal(t, level, LevelForXP(total))
		assert.Equal(t, level, LevelForXP(total+XPForNextLevel(level)-1))
		total += XPForNextLevel(level)
	}
}
