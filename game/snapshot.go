package game

import (
	"errors"
	"fmt"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is a behaviourless copy of a position handed to and received
// from the outside (rendering, broadcast, remote authority).
type Snapshot struct {
	Board         [Cells]Piece `json:"board"`
	GoatsToPlace  int          `json:"goats_to_place"`
	GoatsCaptured int          `json:"goats_captured"`
	Turn          Side         `json:"turn"`
	Winner        Side         `json:"winner"`
}

func (gs *GameState) Snapshot() Snapshot {
	return Snapshot{
		Board:         gs.Board,
		GoatsToPlace:  gs.GoatsToPlace,
		GoatsCaptured: gs.GoatsCaptured,
		Turn:          gs.Turn,
		Winner:        gs.Winner,
	}
}

// FromSnapshot rebuilds a position from a snapshot, checking that the
// values describe a reachable piece count.
func FromSnapshot(s Snapshot) (*GameState, error) {
	tigers, goats := 0, 0
	for cell, p := range s.Board {
		switch p {
		case Empty:
		case Goat:
			goats++
		case Tiger:
			tigers++
		default:
			return nil, fmt.Errorf("%w: cell %d holds %v", ErrInvalidSnapshot, cell, p)
		}
	}
	if tigers != len(TigerStarts) {
		return nil, fmt.Errorf("%w: %d tigers on board", ErrInvalidSnapshot, tigers)
	}
	if s.GoatsToPlace < 0 || s.GoatsToPlace > TotalGoats {
		return nil, fmt.Errorf("%w: %d goats to place", ErrInvalidSnapshot, s.GoatsToPlace)
	}
	if s.GoatsCaptured < 0 || s.GoatsCaptured > CapturesToWin {
		return nil, fmt.Errorf("%w: %d goats captured", ErrInvalidSnapshot, s.GoatsCaptured)
	}
	if goats+s.GoatsToPlace+s.GoatsCaptured != TotalGoats {
		return nil, fmt.Errorf("%w: %d on board, %d to place and %d captured do not add up to %d goats",
			ErrInvalidSnapshot, goats, s.GoatsToPlace, s.GoatsCaptured, TotalGoats)
	}
	if s.Turn != Goats && s.Turn != Tigers {
		return nil, fmt.Errorf("%w: turn %v", ErrInvalidSnapshot, s.Turn)
	}
	if s.Winner > Tigers {
		return nil, fmt.Errorf("%w: winner %v", ErrInvalidSnapshot, s.Winner)
	}

	return &GameState{
		Board:         s.Board,
		GoatsToPlace:  s.GoatsToPlace,
		GoatsCaptured: s.GoatsCaptured,
		Turn:          s.Turn,
		Winner:        s.Winner,
	}, nil
}
