package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated   EventType = "game_created"
	EventShipPlaced    EventType = "ship_placed"
	EventBattleStarted EventType = "battle_started"
	EventPlayerFired   EventType = "player_fired"
	EventComputerFired EventType = "computer_fired"
	EventGameOver      EventType = "game_over"
	EventGameDeleted   EventType = "game_deleted"
)

// Event describes a state change of a game
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	PlayerID  PlayerID
	Payload   any // Type-specific data
}

// ShotPayload contains data for player_fired and computer_fired events
type ShotPayload struct {
	Shot     Shot
	Accuracy int  // shooter's accuracy after this shot
	Turn     int  // game turn after this shot
	ReplyDue bool // true when the computer is now expected to fire
}

// GameOverPayload contains data for game_over events
type GameOverPayload struct {
	Winner Side
}

// GameDeletedPayload contains data for game_deleted events
type GameDeletedPayload struct {
	ReplacedBy GameID // the game the player moved on to
}
