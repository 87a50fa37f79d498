package engine

import (
	"fmt"
	"sync"

	"baghchal/game"
)

// Update is published after every accepted move.
type Update struct {
	Ply      int
	Side     game.Side // side that moved
	Move     game.Move
	Snapshot game.Snapshot
}

// Host holds the authoritative position. Every submitted move is validated
// against it and accepted moves are broadcast to the observers.
type Host struct {
	mu        sync.Mutex
	state     *game.GameState
	ply       int
	observers []func(Update)
}

func NewHost() *Host {
	return &Host{state: game.NewGameState()}
}

// Observe registers fn for every following update. fn runs on the goroutine
// that submitted the move.
func (h *Host) Observe(fn func(Update)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observers = append(h.observers, fn)
}

// State returns a copy of the authoritative position.
func (h *Host) State() *game.GameState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Copy()
}

func (h *Host) Snapshot() game.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.Snapshot()
}

func (h *Host) Ply() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ply
}

// Play applies move if it is legal. A rejected move leaves the position as
// it was and is not broadcast.
func (h *Host) Play(move game.Move) error {
	h.mu.Lock()
	side := h.state.Turn
	if err := h.state.Apply(move); err != nil {
		h.mu.Unlock()
		return fmt.Errorf("move %v rejected: %w", move, err)
	}
	h.ply++
	u := Update{
		Ply:      h.ply,
		Side:     side,
		Move:     move,
		Snapshot: h.state.Snapshot(),
	}
	observers := h.observers
	h.mu.Unlock()

	for _, fn := range observers {
		fn(u)
	}
	return nil
}

// Restart replaces the position with the starting one.
func (h *Host) Restart() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = game.NewGameState()
	h.ply = 0
}

// Load replaces the position with one received from elsewhere.
func (h *Host) Load(s game.Snapshot) error {
	gs, err := game.FromSnapshot(s)
	if err != nil {
		return fmt.Errorf("failed to load position: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = gs
	h.ply = 0
	return nil
}
