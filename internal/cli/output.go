package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/battleship-go2/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Player:
		o.printPlayer(v)
	case response.AuthResponse:
		o.printAuthResult(v)
	case response.GameState:
		o.printGameState(v)
	case response.FireResponse:
		o.printFireResult(v)
	case response.HealthResponse:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPlayer(p response.Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Fprintf(o.w, "Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a response.AuthResponse) {
	o.printPlayer(a.Player)
	fmt.Fprintf(o.w, "Token: %s\n", a.SessionToken)
}

func (o *Output) printGameState(g response.GameState) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	fmt.Fprintf(o.w, "Phase: %s\n", g.Phase)

	switch {
	case g.Phase == "placement":
		orientation := "horizontal"
		if g.Vertical {
			orientation = "vertical"
		}
		fmt.Fprintf(o.w, "Orientation: %s\n", orientation)
		if g.SelectedShip != "" {
			fmt.Fprintf(o.w, "Selected: %s\n", g.SelectedShip)
		}
		fmt.Fprintf(o.w, "To place: %s\n", strings.Join(g.RemainingShips, ", "))
	case g.Winner != nil:
		fmt.Fprintf(o.w, "Winner: %s\n", *g.Winner)
	case g.ComputerTurn:
		fmt.Fprintln(o.w, "Turn: computer")
	default:
		fmt.Fprintln(o.w, "Turn: you")
	}

	if g.LastShot != nil {
		fmt.Fprintf(o.w, "Last shot: %s\n", shotText(*g.LastShot))
	}

	fmt.Fprintln(o.w, "\nYour fleet:")
	o.printBoard(g.PlayerBoard)

	if g.OpponentBoard != nil {
		fmt.Fprintln(o.w, "\nEnemy waters:")
		o.printBoard(*g.OpponentBoard)
		o.printShips(g.OpponentBoard.Ships)

		fmt.Fprintf(o.w, "\nYou: %s\n", statsText(g.PlayerStats))
		fmt.Fprintf(o.w, "Computer: %s\n", statsText(g.ComputerStats))
	}
}

func (o *Output) printFireResult(f response.FireResponse) {
	switch {
	case !f.Accepted:
		fmt.Fprintln(o.w, "Shot ignored")
	case f.SunkShip != nil:
		fmt.Fprintf(o.w, "Hit! You sank the %s\n", *f.SunkShip)
	case f.Hit:
		fmt.Fprintln(o.w, "Hit!")
	default:
		fmt.Fprintln(o.w, "Miss")
	}
	if f.GameOver && f.Winner != nil {
		fmt.Fprintf(o.w, "Game over, winner: %s\n", *f.Winner)
	}
}

// printBoard draws a board with A-J column and 1-10 row headers
func (o *Output) printBoard(b response.Board) {
	if len(b.Rows) == 0 {
		return
	}
	size := len(b.Rows)

	fmt.Fprint(o.w, "    ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(o.w, " %c", 'A'+col)
	}
	fmt.Fprintln(o.w)

	for row, cells := range b.Rows {
		fmt.Fprintf(o.w, " %2d ", row+1)
		for _, c := range cells {
			fmt.Fprintf(o.w, " %c", c)
		}
		fmt.Fprintln(o.w)
	}
}

func (o *Output) printShips(ships []response.Ship) {
	var afloat, sunk []string
	for _, s := range ships {
		if s.Sunk {
			sunk = append(sunk, s.Name)
		} else {
			afloat = append(afloat, s.Name)
		}
	}
	if len(afloat) > 0 {
		fmt.Fprintf(o.w, "Afloat: %s\n", strings.Join(afloat, ", "))
	}
	if len(sunk) > 0 {
		fmt.Fprintf(o.w, "Sunk: %s\n", strings.Join(sunk, ", "))
	}
}

func shotText(s response.Shot) string {
	result := "miss"
	if s.Hit {
		result = "hit"
	}
	if s.Sunk != "" {
		result += ", sank " + s.Sunk
	}
	return fmt.Sprintf("%s fired at %s (%s)", s.Side, s.Position.Label, result)
}

func statsText(s response.Stats) string {
	return fmt.Sprintf("%d hits, %d misses, %d sunk, %d%% accuracy", s.Hits, s.Misses, len(s.SunkShips), s.Accuracy)
}
