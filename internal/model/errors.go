package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound     = errors.New("player not found")
	ErrInvalidDisplayName = errors.New("display name must be between 1 and 32 characters")

	// Game errors
	ErrGameNotFound    = errors.New("game not found")
	ErrNotGameOwner    = errors.New("player does not own this game")
	ErrNoActiveGame    = errors.New("player has no active game")
	ErrInvalidPosition = errors.New("invalid board position")

	// Placement errors
	ErrUnknownShipType   = errors.New("unknown ship type")
	ErrShipAlreadyPlaced = errors.New("ship has already been placed")
	ErrInvalidPlacement  = errors.New("ship cannot be placed there")
	ErrPlacementFailed   = errors.New("could not find a valid fleet layout")
)
