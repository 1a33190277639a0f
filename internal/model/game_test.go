package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsAccuracy(t *testing.T) {
	tests := []struct {
		name     string
		stats    Stats
		expected int
	}{
		{"no shots", Stats{}, 0},
		{"three hits one miss", Stats{Hits: 3, Misses: 1}, 75},
		{"all hits", Stats{Hits: 4}, 100},
		{"rounds to nearest", Stats{Hits: 1, Misses: 2}, 33},
		{"rounds half up", Stats{Hits: 1, Misses: 7}, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.stats.Accuracy())
		})
	}
}

func TestStatsHasSunk(t *testing.T) {
	stats := Stats{SunkShips: []Ship{{ID: "destroyer", Type: ShipDestroyer}}}

	assert.True(t, stats.HasSunk("destroyer"))
	assert.False(t, stats.HasSunk("carrier"))
}
