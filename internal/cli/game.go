package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/battleship-go2/internal/api/response"
	"github.com/mcoot/battleship-go2/internal/model"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
		Long: `Play a game against the computer.

Cells are given either as a label such as B7 (column A-J, row 1-10) or as
0-indexed "x y" coordinates.`,
	}

	cmd.AddCommand(newGameNewCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameSelectCmd())
	cmd.AddCommand(newGameRotateCmd())
	cmd.AddCommand(newGamePlaceCmd())
	cmd.AddCommand(newGameAutoPlaceCmd())
	cmd.AddCommand(newGameFireCmd())
	cmd.AddCommand(newGameResetCmd())

	return cmd
}

// gameAction posts body to a game endpoint and prints the resulting state
func gameAction(ctx context.Context, path string, body any) error {
	var result response.GameState
	if err := client.Post(ctx, path, body, &result); err != nil {
		return err
	}
	NewOutput(cfg.Output).Print(result)
	return nil
}

func gamePath(id, action string) string {
	path := "/api/v1/games/" + id
	if action != "" {
		path += "/" + action
	}
	return path
}

func newGameNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return gameAction(cmd.Context(), "/api/v1/games", nil)
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [game-id]",
		Short: "Show a game, or your active game",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/games/active"
			if len(args) == 1 {
				path = gamePath(args[0], "")
			}

			var result response.GameState
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <game-id> <ship-type>",
		Short: "Select the ship to place next",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return gameAction(cmd.Context(), gamePath(args[0], "select"), map[string]string{"ship_type": args[1]})
		},
	}
}

func newGameRotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate <game-id>",
		Short: "Toggle placement orientation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return gameAction(cmd.Context(), gamePath(args[0], "rotate"), nil)
		},
	}
}

func newGamePlaceCmd() *cobra.Command {
	var vertical bool

	cmd := &cobra.Command{
		Use:   "place <game-id> <ship-type> <cell | x y>",
		Short: "Place a ship with its first cell at the given position",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parseTarget(args[2:])
			if err != nil {
				return err
			}
			return gameAction(cmd.Context(), gamePath(args[0], "ships"), map[string]any{
				"ship_type": args[1],
				"x":         pos.X,
				"y":         pos.Y,
				"vertical":  vertical,
			})
		},
	}

	cmd.Flags().BoolVar(&vertical, "vertical", false, "Place the ship vertically")

	return cmd
}

func newGameAutoPlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto-place <game-id>",
		Short: "Place the rest of your fleet randomly and start the battle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return gameAction(cmd.Context(), gamePath(args[0], "auto-place"), nil)
		},
	}
}

func newGameFireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fire <game-id> <cell | x y>",
		Short: "Fire at the enemy fleet",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parseTarget(args[1:])
			if err != nil {
				return err
			}

			var result response.FireResponse
			if err := client.Post(cmd.Context(), gamePath(args[0], "fire"), map[string]int{"x": pos.X, "y": pos.Y}, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <game-id>",
		Short: "Abandon the game and start a new one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return gameAction(cmd.Context(), gamePath(args[0], "reset"), nil)
		},
	}
}

// parseTarget reads a cell from either a label ("B7") or "x y" arguments
func parseTarget(args []string) (model.Position, error) {
	switch len(args) {
	case 1:
		return model.ParsePosition(args[0])
	case 2:
		x, err := strconv.Atoi(args[0])
		if err != nil {
			return model.Position{}, fmt.Errorf("x must be a number: %w", err)
		}
		y, err := strconv.Atoi(args[1])
		if err != nil {
			return model.Position{}, fmt.Errorf("y must be a number: %w", err)
		}
		pos := model.Position{X: x, Y: y}
		if !model.IsValidPosition(pos) {
			return model.Position{}, fmt.Errorf("%w: %d %d", model.ErrInvalidPosition, x, y)
		}
		return pos, nil
	default:
		return model.Position{}, fmt.Errorf("expected a cell like B7 or x y coordinates")
	}
}
