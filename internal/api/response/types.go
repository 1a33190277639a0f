package response

import (
	"time"

	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/auth"
)

// Board row symbols
const (
	CellWater = '.'
	CellShip  = 'S'
	CellHit   = 'X'
	CellMiss  = 'o'
	CellSunk  = '#'
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Position is a grid coordinate with its A1-style label
type Position struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label"`
}

// PositionFromModel converts model.Position
func PositionFromModel(p model.Position) Position {
	return Position{X: p.X, Y: p.Y, Label: p.Label()}
}

// Ship describes a ship. Positions are omitted for enemy ships still afloat.
type Ship struct {
	Type      string     `json:"type"`
	Name      string     `json:"name"`
	Length    int        `json:"length"`
	Positions []Position `json:"positions,omitempty"`
	Hits      int        `json:"hits"`
	Sunk      bool       `json:"sunk"`
}

// Board is a 10x10 grid rendered as one string per row, plus its fleet
type Board struct {
	Rows  []string `json:"rows"`
	Ships []Ship   `json:"ships"`
}

// BoardFromModel converts model.Board. With fog set, unhit cells of ships
// still afloat read as water and their positions are withheld.
func BoardFromModel(b model.Board, fog bool) Board {
	rows := make([]string, model.GridSize)
	for y := 0; y < model.GridSize; y++ {
		row := make([]byte, model.GridSize)
		for x := 0; x < model.GridSize; x++ {
			row[x] = cellSymbol(b, model.Position{X: x, Y: y}, fog)
		}
		rows[y] = string(row)
	}

	ships := make([]Ship, len(b.Ships))
	for i, s := range b.Ships {
		ships[i] = Ship{
			Type:   string(s.Type),
			Name:   s.Type.DisplayName(),
			Length: s.Type.Length(),
			Hits:   len(s.Hits),
			Sunk:   s.IsSunk(),
		}
		if !fog || s.IsSunk() {
			ships[i].Positions = make([]Position, len(s.Positions))
			for j, p := range s.Positions {
				ships[i].Positions[j] = PositionFromModel(p)
			}
		}
	}

	return Board{Rows: rows, Ships: ships}
}

func cellSymbol(b model.Board, pos model.Position, fog bool) byte {
	cell, _ := b.Cell(pos)
	if !cell.IsOccupied() {
		if cell.Fired {
			return CellMiss
		}
		return CellWater
	}
	ship := b.Ship(cell.ShipID)
	switch {
	case ship != nil && ship.IsSunk():
		return CellSunk
	case cell.Fired:
		return CellHit
	case fog:
		return CellWater
	default:
		return CellShip
	}
}

// Stats summarises one side's shooting
type Stats struct {
	Hits      int      `json:"hits"`
	Misses    int      `json:"misses"`
	Shots     int      `json:"shots"`
	Accuracy  int      `json:"accuracy"`
	SunkShips []string `json:"sunk_ships"`
}

// StatsFromModel converts model.Stats
func StatsFromModel(s model.Stats) Stats {
	sunk := make([]string, len(s.SunkShips))
	for i, ship := range s.SunkShips {
		sunk[i] = string(ship.Type)
	}
	return Stats{
		Hits:      s.Hits,
		Misses:    s.Misses,
		Shots:     s.Shots(),
		Accuracy:  s.Accuracy(),
		SunkShips: sunk,
	}
}

// Shot describes a resolved shot
type Shot struct {
	Side     string   `json:"side"`
	Position Position `json:"position"`
	Hit      bool     `json:"hit"`
	Sunk     string   `json:"sunk,omitempty"`
}

// ShotFromModel converts model.Shot
func ShotFromModel(s *model.Shot) *Shot {
	if s == nil {
		return nil
	}
	return &Shot{
		Side:     string(s.Side),
		Position: PositionFromModel(s.Position),
		Hit:      s.Hit,
		Sunk:     string(s.Sunk),
	}
}

// GameState represents the current game state as seen by the player
type GameState struct {
	ID             string    `json:"id"`
	Phase          string    `json:"phase"`
	Turn           int       `json:"turn"`
	ComputerTurn   bool      `json:"computer_turn"`
	Winner         *string   `json:"winner"`
	SelectedShip   string    `json:"selected_ship,omitempty"`
	Vertical       bool      `json:"vertical"`
	RemainingShips []string  `json:"remaining_ships"`
	PlayerBoard    Board     `json:"player_board"`
	OpponentBoard  *Board    `json:"opponent_board,omitempty"`
	PlayerStats    Stats     `json:"player_stats"`
	ComputerStats  Stats     `json:"computer_stats"`
	LastShot       *Shot     `json:"last_shot,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GameStateFromModel converts model.Game. The opponent board is omitted during
// placement and fogged until the game is over.
func GameStateFromModel(g *model.Game) GameState {
	remaining := []string{}
	for _, t := range g.RemainingShipTypes() {
		remaining = append(remaining, string(t))
	}

	var opponent *Board
	if g.Phase != model.PhasePlacement {
		b := BoardFromModel(g.OpponentBoard, !g.IsOver())
		opponent = &b
	}

	return GameState{
		ID:             string(g.ID),
		Phase:          string(g.Phase),
		Turn:           g.Turn,
		ComputerTurn:   g.ComputerTurn,
		Winner:         optionalString(string(g.Winner)),
		SelectedShip:   string(g.SelectedShip),
		Vertical:       g.Vertical,
		RemainingShips: remaining,
		PlayerBoard:    BoardFromModel(g.PlayerBoard, false),
		OpponentBoard:  opponent,
		PlayerStats:    StatsFromModel(g.PlayerStats),
		ComputerStats:  StatsFromModel(g.ComputerStats),
		LastShot:       ShotFromModel(g.LastShot),
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

// FireResponse is the response after firing at the opponent
type FireResponse struct {
	Accepted bool      `json:"accepted"`
	Hit      bool      `json:"hit"`
	SunkShip *string   `json:"sunk_ship"`
	GameOver bool      `json:"game_over"`
	Winner   *string   `json:"winner"`
	Game     GameState `json:"game"`
}

// FireResponseFromOutcome converts a controller outcome for a player shot
func FireResponseFromOutcome(accepted bool, shot *model.Shot, gameOver bool, g *model.Game) FireResponse {
	resp := FireResponse{
		Accepted: accepted,
		GameOver: gameOver,
		Winner:   optionalString(string(g.Winner)),
		Game:     GameStateFromModel(g),
	}
	if accepted && shot != nil {
		resp.Hit = shot.Hit
		resp.SunkShip = optionalString(string(shot.Sunk))
	}
	return resp
}

// HealthResponse is the response for the health check
type HealthResponse struct {
	Status string `json:"status"`
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
