package bot

import (
	"github.com/mcoot/battleship-go2/internal/dependencies/random"
	"github.com/mcoot/battleship-go2/internal/model"
)

// RandomStrategy fires uniformly at random among cells not yet fired at
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseTarget picks a random unfired cell, in row-major index order
func (s *RandomStrategy) ChooseTarget(board model.Board) (model.Position, bool) {
	available := board.UnfiredPositions()
	if len(available) == 0 {
		return model.Position{}, false
	}
	return available[s.random.Intn(len(available))], true
}
