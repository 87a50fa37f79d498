package game

import (
	"errors"
	"fmt"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrWrongTurn   = errors.New("not this side's turn")
	ErrIllegalMove = errors.New("illegal move")
)

// GameState is a full position: board contents, goat counters, side to
// move and the winner, if any. It is a plain value; Copy is a cheap struct
// copy.
type GameState struct {
	Board         [Cells]Piece
	GoatsToPlace  int
	GoatsCaptured int
	Turn          Side
	Winner        Side
}

// NewGameState returns the canonical starting position.
func NewGameState() *GameState {
	gs := &GameState{
		GoatsToPlace: TotalGoats,
		Turn:         Goats,
		Winner:       NoSide,
	}
	for _, cell := range TigerStarts {
		gs.Board[cell] = Tiger
	}
	return gs
}

func (gs *GameState) Copy() *GameState {
	c := *gs
	return &c
}

// Phase reports whether goats are still being placed.
func (gs *GameState) Phase() Phase {
	if gs.GoatsToPlace > 0 {
		return PlacementPhase
	}
	return MovementPhase
}

func (gs *GameState) IsTerminal() bool {
	return gs.Winner != NoSide
}

// Player returns the side to move.
func (gs *GameState) Player() Side {
	return gs.Turn
}

// LegalMoves returns the moves available to the side to move, or nil once
// the game is decided.
func (gs *GameState) LegalMoves() []Move {
	if gs.IsTerminal() {
		return nil
	}
	return gs.GenerateMoves(gs.Turn)
}

// GenerateMoves lists every move side could make in this position,
// regardless of whose turn it is.
func (gs *GameState) GenerateMoves(side Side) []Move {
	switch side {
	case Goats:
		return gs.goatMoves()
	case Tigers:
		return gs.tigerMoves()
	default:
		return nil
	}
}

func (gs *GameState) goatMoves() []Move {
	var moves []Move
	if gs.Phase() == PlacementPhase {
		for cell, piece := range gs.Board {
			if piece == Empty {
				moves = append(moves, Place{To: cell})
			}
		}
		return moves
	}
	for cell, piece := range gs.Board {
		if piece != Goat {
			continue
		}
		for _, n := range Board.Neighbors(cell) {
			if gs.Board[n] == Empty {
				moves = append(moves, Slide{From: cell, To: n})
			}
		}
	}
	return moves
}

func (gs *GameState) tigerMoves() []Move {
	var moves []Move
	for cell, piece := range gs.Board {
		if piece != Tiger {
			continue
		}
		for _, n := range Board.Neighbors(cell) {
			if gs.Board[n] == Empty {
				moves = append(moves, Slide{From: cell, To: n})
			}
		}
		moves = append(moves, gs.capturesFrom(cell)...)
	}
	return moves
}

// Captures lists only the capturing moves available to the tigers.
func (gs *GameState) Captures() []Move {
	var moves []Move
	for cell, piece := range gs.Board {
		if piece == Tiger {
			moves = append(moves, gs.capturesFrom(cell)...)
		}
	}
	return moves
}

func (gs *GameState) capturesFrom(cell int) []Move {
	var moves []Move
	for _, over := range Board.Neighbors(cell) {
		if gs.Board[over] != Goat {
			continue
		}
		if to, ok := Board.LandingFromJump(cell, over); ok && gs.Board[to] == Empty {
			moves = append(moves, Capture{From: cell, Over: over, To: to})
		}
	}
	return moves
}

// Apply validates move against the position and plays it. On error the
// position is left untouched.
func (gs *GameState) Apply(move Move) error {
	if gs.IsTerminal() {
		return fmt.Errorf("%w: %s already won", ErrGameOver, gs.Winner)
	}
	if err := gs.validate(move); err != nil {
		return err
	}

	switch m := move.(type) {
	case Place:
		gs.Board[m.To] = Goat
		gs.GoatsToPlace--
	case Slide:
		gs.Board[m.To] = gs.Board[m.From]
		gs.Board[m.From] = Empty
	case Capture:
		gs.Board[m.From] = Empty
		gs.Board[m.Over] = Empty
		gs.Board[m.To] = Tiger
		gs.GoatsCaptured++
	}
	gs.Turn = gs.Turn.Opponent()
	gs.updateWinner()
	return nil
}

// Play returns a copy of the position with move applied. It panics on an
// illegal move, so it is meant for moves taken from GenerateMoves.
func (gs *GameState) Play(move Move) *GameState {
	next := gs.Copy()
	if err := next.Apply(move); err != nil {
		panic(err)
	}
	return next
}

func (gs *GameState) validate(move Move) error {
	switch m := move.(type) {
	case Place:
		if gs.Turn != Goats {
			return fmt.Errorf("%w: goats place, %s to move", ErrWrongTurn, gs.Turn)
		}
		if !InRange(m.To) {
			return fmt.Errorf("%w: cell %d out of range", ErrIllegalMove, m.To)
		}
		if gs.GoatsToPlace == 0 {
			return fmt.Errorf("%w: no goats left to place", ErrIllegalMove)
		}
		if gs.Board[m.To] != Empty {
			return fmt.Errorf("%w: cell %d is occupied", ErrIllegalMove, m.To)
		}
	case Slide:
		if !InRange(m.From) || !InRange(m.To) {
			return fmt.Errorf("%w: slide %d-%d out of range", ErrIllegalMove, m.From, m.To)
		}
		piece := gs.Board[m.From]
		if piece == Empty {
			return fmt.Errorf("%w: no piece on cell %d", ErrIllegalMove, m.From)
		}
		if piece != gs.Turn.Piece() {
			return fmt.Errorf("%w: %s on cell %d, %s to move", ErrWrongTurn, piece, m.From, gs.Turn)
		}
		if piece == Goat && gs.Phase() == PlacementPhase {
			return fmt.Errorf("%w: goats cannot move while %d remain to be placed", ErrIllegalMove, gs.GoatsToPlace)
		}
		if !Board.Adjacent(m.From, m.To) {
			return fmt.Errorf("%w: cells %d and %d are not adjacent", ErrIllegalMove, m.From, m.To)
		}
		if gs.Board[m.To] != Empty {
			return fmt.Errorf("%w: cell %d is occupied", ErrIllegalMove, m.To)
		}
	case Capture:
		if gs.Turn != Tigers {
			return fmt.Errorf("%w: tigers capture, %s to move", ErrWrongTurn, gs.Turn)
		}
		if !InRange(m.From) || !InRange(m.Over) || !InRange(m.To) {
			return fmt.Errorf("%w: capture %d-%d-%d out of range", ErrIllegalMove, m.From, m.Over, m.To)
		}
		if gs.Board[m.From] != Tiger {
			return fmt.Errorf("%w: no tiger on cell %d", ErrIllegalMove, m.From)
		}
		if gs.Board[m.Over] != Goat {
			return fmt.Errorf("%w: no goat to capture on cell %d", ErrIllegalMove, m.Over)
		}
		if !Board.Adjacent(m.From, m.Over) {
			return fmt.Errorf("%w: cells %d and %d are not adjacent", ErrIllegalMove, m.From, m.Over)
		}
		if landing, ok := Board.LandingFromJump(m.From, m.Over); !ok || landing != m.To {
			return fmt.Errorf("%w: jump %d over %d does not land on %d", ErrIllegalMove, m.From, m.Over, m.To)
		}
		if gs.Board[m.To] != Empty {
			return fmt.Errorf("%w: cell %d is occupied", ErrIllegalMove, m.To)
		}
	default:
		return fmt.Errorf("%w: unsupported move %v", ErrIllegalMove, move)
	}
	return nil
}

// updateWinner runs after every applied move, whichever side made it.
func (gs *GameState) updateWinner() {
	if gs.GoatsCaptured >= CapturesToWin {
		gs.Winner = Tigers
		return
	}
	if gs.tigersBlocked() {
		gs.Winner = Goats
	}
}

// tigersBlocked reports whether GenerateMoves(Tigers) would be empty.
func (gs *GameState) tigersBlocked() bool {
	for cell, piece := range gs.Board {
		if piece != Tiger {
			continue
		}
		for _, n := range Board.Neighbors(cell) {
			switch gs.Board[n] {
			case Empty:
				return false
			case Goat:
				if to, ok := Board.LandingFromJump(cell, n); ok && gs.Board[to] == Empty {
					return false
				}
			}
		}
	}
	return true
}

// Count returns how many cells hold piece.
func (gs *GameState) Count(piece Piece) int {
	n := 0
	for _, p := range gs.Board {
		if p == piece {
			n++
		}
	}
	return n
}

// Hash packs the position into 64 bits: two bits per cell, then the goats
// left to place, the captured goats and the side to move. Winner is derived
// from the rest and left out.
func (gs *GameState) Hash() StateHash {
	var h uint64
	for i, p := range gs.Board {
		h |= uint64(p) << (2 * i)
	}
	h |= uint64(gs.GoatsToPlace&0x1f) << 50
	h |= uint64(gs.GoatsCaptured&0x7) << 55
	if gs.Turn == Tigers {
		h |= 1 << 58
	}
	return StateHash(h)
}
