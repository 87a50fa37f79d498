package game

import "fmt"

const (
	Size  = 5
	Cells = Size * Size

	TotalGoats    = 20
	CapturesToWin = 5 // captured goats needed for a tiger victory
)

// TigerStarts are the corner intersections the tigers occupy at the start.
var TigerStarts = [4]int{0, 4, 20, 24}

// Piece is the content of a single intersection.
type Piece uint8

const (
	Empty Piece = iota
	Goat
	Tiger
)

func (p Piece) String() string {
	switch p {
	case Empty:
		return "empty"
	case Goat:
		return "goat"
	case Tiger:
		return "tiger"
	default:
		return fmt.Sprintf("Piece(%d)", uint8(p))
	}
}

// Side identifies a player. NoSide is used for an undecided winner.
type Side uint8

const (
	NoSide Side = iota
	Goats
	Tigers
)

func (s Side) String() string {
	switch s {
	case NoSide:
		return "none"
	case Goats:
		return "goat"
	case Tigers:
		return "tiger"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

// Opponent returns the other side. NoSide has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case Goats:
		return Tigers
	case Tigers:
		return Goats
	default:
		return NoSide
	}
}

// Piece returns the piece a side plays with.
func (s Side) Piece() Piece {
	switch s {
	case Goats:
		return Goat
	case Tigers:
		return Tiger
	default:
		return Empty
	}
}

// ParseSide accepts "goat"/"goats" and "tiger"/"tigers".
func ParseSide(name string) (Side, error) {
	switch name {
	case "goat", "goats":
		return Goats, nil
	case "tiger", "tigers":
		return Tigers, nil
	default:
		return NoSide, fmt.Errorf("unknown side %q", name)
	}
}

// Phase of the goat side's play.
type Phase int

const (
	PlacementPhase Phase = iota
	MovementPhase
)

func (p Phase) String() string {
	if p == PlacementPhase {
		return "placement"
	}
	return "movement"
}

// StateHash is a canonical, collision free key of a position.
type StateHash uint64

// Evaluator scores a non-terminal position from the goats' perspective
// (positive favours the goats).
type Evaluator func(*GameState) float64
