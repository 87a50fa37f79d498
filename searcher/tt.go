package searcher

import "baghchal/game"

type Bound uint8

const (
	Exact Bound = iota
	Lower       // score is at least this
	Upper       // score is at most this
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case Lower:
		return "lower"
	default:
		return "upper"
	}
}

type entry struct {
	depth int
	score float64
	bound Bound
	move  game.Move
}

// table lives as long as its Searcher. Entries are overwritten, never
// evicted.
type table map[game.StateHash]entry

// probe narrows the window with a stored result that was searched at least
// as deep. ok reports that the stored score can be returned as is.
func (t table) probe(hash game.StateHash, depth int, alpha, beta float64) (e entry, a, b float64, ok bool) {
	e, found := t[hash]
	if !found || e.depth < depth {
		return e, alpha, beta, false
	}
	switch e.bound {
	case Exact:
		return e, alpha, beta, true
	case Lower:
		alpha = max(alpha, e.score)
	case Upper:
		beta = min(beta, e.score)
	}
	return e, alpha, beta, alpha >= beta
}

func (t table) store(hash game.StateHash, depth int, score, alpha, beta float64, move game.Move) {
	bound := Exact
	if score <= alpha {
		bound = Upper
	} else if score >= beta {
		bound = Lower
	}
	t[hash] = entry{depth: depth, score: score, bound: bound, move: move}
}
