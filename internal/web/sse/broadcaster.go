package sse

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/web/templates/components"
)

// SSE event names sent to game pages
const (
	EventComputerFired = "computer-fired"
	EventGameOver      = "game-over"
)

// Broadcaster pushes game events to the browsers watching a game.
// It implements game.Notifier.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Notify forwards computer shots and game endings to connected browsers.
// A game's hub is released once the game is over or deleted.
func (b *Broadcaster) Notify(ctx context.Context, event model.Event) {
	switch event.Type {
	case model.EventComputerFired:
		payload, ok := event.Payload.(model.ShotPayload)
		if !ok {
			return
		}
		b.BroadcastComputerFired(ctx, event.GameID, payload.Shot)
	case model.EventGameOver:
		b.BroadcastGameOver(event.GameID)
		b.hubManager.RemoveHub(event.GameID)
	case model.EventGameDeleted:
		b.hubManager.RemoveHub(event.GameID)
	}
}

// BroadcastComputerFired sends the computer's shot as an out-of-band
// replacement of the last-shot message; clients refresh the boards on receipt
func (b *Broadcaster) BroadcastComputerFired(ctx context.Context, gameID model.GameID, shot model.Shot) {
	hub := b.hubManager.GetHub(gameID)
	if hub == nil {
		return
	}

	var buf bytes.Buffer
	if err := components.LastShot(&shot).Render(ctx, &buf); err != nil {
		b.logger.Error("sse failed to render shot",
			slog.String("game_id", string(gameID)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(EventComputerFired, buf.String())
}

// BroadcastGameOver signals that the game has finished
func (b *Broadcaster) BroadcastGameOver(gameID model.GameID) {
	hub := b.hubManager.GetHub(gameID)
	if hub == nil {
		return
	}
	hub.BroadcastEvent(EventGameOver, "over")
}
