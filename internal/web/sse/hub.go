package sse

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mcoot/battleship-go2/internal/dependencies/clock"
	"github.com/mcoot/battleship-go2/internal/model"
)

const (
	// DefaultSweepInterval is how often the manager looks for unwatched hubs
	DefaultSweepInterval = time.Minute

	// idleSweepsBeforeClose is how many consecutive sweeps must find a hub
	// unwatched before it is closed
	idleSweepsBeforeClose = 2

	outboxSize = 64
)

// Hub fans messages out to the browsers watching one game. The client set
// is owned by the Run goroutine; other goroutines talk to it over channels.
type Hub struct {
	gameID model.GameID
	logger *slog.Logger

	joins  chan *Client
	leaves chan *Client
	outbox chan []byte

	closing   chan struct{}
	closeOnce sync.Once
	stopped   chan struct{}

	watchers atomic.Int32

	// idleSweeps is guarded by the owning HubManager's lock
	idleSweeps int
}

// NewHub creates a new Hub for a game
func NewHub(gameID model.GameID, logger *slog.Logger) *Hub {
	return &Hub{
		gameID:  gameID,
		logger:  logger.With(slog.String("game_id", string(gameID))),
		joins:   make(chan *Client),
		leaves:  make(chan *Client),
		outbox:  make(chan []byte, outboxSize),
		closing: make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Run owns the client set until the hub is closed. Messages queued before
// Close are still delivered, then every client channel is closed.
func (h *Hub) Run() {
	defer close(h.stopped)

	clients := make(map[*Client]struct{})
	for {
		select {
		case c := <-h.joins:
			clients[c] = struct{}{}
			h.watchers.Store(int32(len(clients)))
			h.logger.Info("sse client registered",
				slog.String("player_id", string(c.playerID)),
				slog.Int("total_clients", len(clients)))

		case c := <-h.leaves:
			if _, ok := clients[c]; !ok {
				continue
			}
			delete(clients, c)
			close(c.send)
			h.watchers.Store(int32(len(clients)))
			h.logger.Info("sse client unregistered",
				slog.String("player_id", string(c.playerID)),
				slog.Duration("connection_duration", time.Since(c.connectedAt)),
				slog.Int("total_clients", len(clients)))

		case msg := <-h.outbox:
			h.deliver(clients, msg)

		case <-h.closing:
			h.flush(clients)
			for c := range clients {
				close(c.send)
			}
			h.watchers.Store(0)
			h.logger.Debug("sse hub stopped", slog.Int("disconnected_clients", len(clients)))
			return
		}
	}
}

func (h *Hub) deliver(clients map[*Client]struct{}, msg []byte) {
	dropped := 0
	for c := range clients {
		select {
		case c.send <- msg:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("sse message dropped, client buffer full", slog.Int("dropped", dropped))
	}
}

// flush delivers whatever is still queued in the outbox
func (h *Hub) flush(clients map[*Client]struct{}) {
	for {
		select {
		case msg := <-h.outbox:
			h.deliver(clients, msg)
		default:
			return
		}
	}
}

// Register adds a client to the hub. It returns false if the hub is closed.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.joins <- client:
		return true
	case <-h.closing:
		return false
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.leaves <- client:
	case <-h.closing:
	}
}

// BroadcastEvent queues an SSE event for every client. Events sent after
// Close are discarded.
func (h *Hub) BroadcastEvent(eventName, data string) {
	select {
	case <-h.closing:
		return
	default:
	}

	select {
	case h.outbox <- formatSSEMessage(eventName, data):
	default:
		h.logger.Warn("sse event dropped, hub outbox full", slog.String("event", eventName))
	}
}

// Close stops the hub after it has delivered the events already queued
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.closing) })
}

// Stopped is closed once the Run goroutine has exited
func (h *Hub) Stopped() <-chan struct{} {
	return h.stopped
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	return int(h.watchers.Load())
}

// formatSSEMessage formats an SSE message with event name and data.
// Every line of data gets its own "data: " prefix.
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: " + eventName + "\n")
	for _, line := range splitLines(data) {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// splitLines splits on \n, dropping \r and a trailing empty line
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// HubManager keeps one hub per watched game
type HubManager struct {
	mu     sync.Mutex
	hubs   map[model.GameID]*Hub
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.GameID]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a game, starting one if needed
func (m *HubManager) GetOrCreateHub(gameID model.GameID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	hub, ok := m.hubs[gameID]
	if !ok {
		hub = NewHub(gameID, m.logger)
		m.hubs[gameID] = hub
		go hub.Run()
	}
	hub.idleSweeps = 0
	return hub
}

// GetHub returns the hub for a game, or nil if nobody is watching it
func (m *HubManager) GetHub(gameID model.GameID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hubs[gameID]
}

// RemoveHub closes the game's hub once its queued events are delivered
func (m *HubManager) RemoveHub(gameID model.GameID) {
	m.mu.Lock()
	hub, ok := m.hubs[gameID]
	delete(m.hubs, gameID)
	m.mu.Unlock()

	if ok {
		hub.Close()
		m.logger.Info("sse hub removed", slog.String("game_id", string(gameID)))
	}
}

// SweepIdle closes hubs that have had no clients for idleSweepsBeforeClose
// consecutive sweeps and returns how many it closed
func (m *HubManager) SweepIdle() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, hub := range m.hubs {
		if hub.ClientCount() > 0 {
			hub.idleSweeps = 0
			continue
		}
		hub.idleSweeps++
		if hub.idleSweeps >= idleSweepsBeforeClose {
			hub.Close()
			delete(m.hubs, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("sse idle hubs closed", slog.Int("removed", removed), slog.Int("remaining", len(m.hubs)))
	}
	return removed
}

// StartSweeper runs SweepIdle every interval on clk until stop is called
func (m *HubManager) StartSweeper(clk clock.Clock, interval time.Duration) (stop func()) {
	var (
		mu      sync.Mutex
		timer   clock.Timer
		stopped bool
	)

	var schedule func()
	schedule = func() {
		timer = clk.AfterFunc(interval, func() {
			m.SweepIdle()
			mu.Lock()
			defer mu.Unlock()
			if !stopped {
				schedule()
			}
		})
	}

	mu.Lock()
	schedule()
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		stopped = true
		timer.Stop()
	}
}

// CloseAll closes every hub, disconnecting all clients
func (m *HubManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, id)
	}
}

// HubCount returns the number of open hubs
func (m *HubManager) HubCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.hubs)
}
