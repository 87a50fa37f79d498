package game

// Topology is the static adjacency graph of the board.
type Topology struct {
	neighbors [Cells][]int
	adjacent  [Cells][Cells]bool
}

// Board is the standard 5x5 topology, built once at package initialisation.
var Board = NewTopology()

var (
	orthogonal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal   = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// NewTopology builds the adjacency graph: every intersection links to its
// orthogonal neighbours, and intersections with an even row+col also link
// diagonally.
func NewTopology() *Topology {
	t := &Topology{}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			t.link(r, c, orthogonal)
			if (r+c)%2 == 0 {
				t.link(r, c, diagonal)
			}
		}
	}
	return t
}

func (t *Topology) link(r, c int, dirs [4][2]int) {
	i := Index(r, c)
	for _, d := range dirs {
		nr, nc := r+d[0], c+d[1]
		if !inBounds(nr, nc) {
			continue
		}
		n := Index(nr, nc)
		if t.adjacent[i][n] {
			continue
		}
		t.adjacent[i][n] = true
		t.neighbors[i] = append(t.neighbors[i], n)
	}
}

// Neighbors returns the cells adjacent to cell. The slice is shared and
// must not be modified.
func (t *Topology) Neighbors(cell int) []int {
	return t.neighbors[cell]
}

// Adjacent reports whether a and b share an edge.
func (t *Topology) Adjacent(a, b int) bool {
	if !InRange(a) || !InRange(b) {
		return false
	}
	return t.adjacent[a][b]
}

// LandingFromJump returns the cell a piece at src lands on when jumping over
// the adjacent cell over. The landing doubles the src->over vector and must
// itself be linked to over, which rules out diagonal jumps through cells
// without diagonal lines.
func (t *Topology) LandingFromJump(src, over int) (int, bool) {
	if !t.Adjacent(src, over) {
		return 0, false
	}
	sr, sc := RowCol(src)
	or, oc := RowCol(over)
	lr, lc := 2*or-sr, 2*oc-sc
	if !inBounds(lr, lc) {
		return 0, false
	}
	landing := Index(lr, lc)
	if !t.adjacent[over][landing] {
		return 0, false
	}
	return landing, true
}

// Index maps a row and column to a cell index.
func Index(row, col int) int {
	return row*Size + col
}

// RowCol maps a cell index back to its row and column.
func RowCol(cell int) (row, col int) {
	return cell / Size, cell % Size
}

// InRange reports whether cell is a valid board index.
func InRange(cell int) bool {
	return cell >= 0 && cell < Cells
}

// CenterDistance is the Manhattan distance from cell to the centre cell.
func CenterDistance(cell int) int {
	r, c := RowCol(cell)
	return abs(r-Size/2) + abs(c-Size/2)
}

func inBounds(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
