package game

import "fmt"

// Move is one of Place, Slide or Capture. All variants are comparable and
// can be used as map keys.
type Move interface {
	// Destination is the cell the moving piece ends up on.
	Destination() int
	String() string
	isMove()
}

// Place puts a new goat on an empty cell during the placement phase.
type Place struct {
	To int
}

// Slide moves a piece to an adjacent empty cell.
type Slide struct {
	From int
	To   int
}

// Capture is a tiger jumping over an adjacent goat onto the cell beyond it.
type Capture struct {
	From int
	Over int
	To   int
}

func (m Place) Destination() int   { return m.To }
func (m Slide) Destination() int   { return m.To }
func (m Capture) Destination() int { return m.To }

func (m Place) String() string   { return fmt.Sprintf("place %d", m.To) }
func (m Slide) String() string   { return fmt.Sprintf("slide %d-%d", m.From, m.To) }
func (m Capture) String() string { return fmt.Sprintf("capture %d-%d-%d", m.From, m.Over, m.To) }

func (Place) isMove()   {}
func (Slide) isMove()   {}
func (Capture) isMove() {}

// IsCapture reports whether m is a Capture.
func IsCapture(m Move) bool {
	_, ok := m.(Capture)
	return ok
}
