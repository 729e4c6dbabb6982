package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceForLevel(t *testing.T) {
	tests := []struct {
		name       string
		base       int64
		multiplier float64
		level      int
		want       int64
	}{
		{"first level is base", 500, 1.6, 1, 500},
		{"second level", 500, 1.6, 2, 800},
		{"third level floors", 500, 1.6, 3, 1280},
		{"doubling", 750, 2.0, 3, 3000},
		{"flat multiplier", 10000, 1.0, 5, 10000},
		{"fractional floors down", 100, 1.5, 2, 150},
		{"level below one clamps", 500, 1.6, 0, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriceForLevel(tt.base, tt.multiplier, tt.level))
		})
	}
}

func TestPriceForLevelMonotonic(t *testing.T) {
	item := &ShopItem{BasePrice: 500, PriceMultiplier: 1.6, MaxLevel: 10}

	prev := int64(0)
	for level := 1; level <= item.MaxLevel; level++ {
		price := item.Price(level)
		assert.Greater(t, price, prev, "level %d", level)
		prev = price
	}
}
