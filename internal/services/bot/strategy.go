package bot

import "github.com/mcoot/battleship-go2/internal/model"

// Strategy defines how the computer picks its next target
type Strategy interface {
	// ChooseTarget selects an unfired cell of the player's board. It returns
	// false when no unfired cell is left.
	ChooseTarget(board model.Board) (model.Position, bool)
}
