package searcher

import (
	"cmp"
	"slices"

	"baghchal/game"
)

// killers keeps the last two quiet moves that cut off at each remaining
// depth, most recent first.
type killers map[int][2]game.Move

func (k killers) add(depth int, move game.Move) {
	slots := k[depth]
	if slots[0] == move {
		return
	}
	k[depth] = [2]game.Move{move, slots[0]}
}

func (k killers) contains(depth int, move game.Move) bool {
	slots := k[depth]
	return slots[0] == move || slots[1] == move
}

// history accumulates depth² for every move that caused a cutoff.
type history map[game.Move]int

type scored struct {
	move    game.Move
	capture bool
	killer  bool
	history int
	center  int // higher is closer to the centre
}

func compareScored(a, b scored) int {
	if c := cmp.Compare(boolRank(b.capture), boolRank(a.capture)); c != 0 {
		return c
	}
	if c := cmp.Compare(boolRank(b.killer), boolRank(a.killer)); c != 0 {
		return c
	}
	if c := cmp.Compare(b.history, a.history); c != 0 {
		return c
	}
	return cmp.Compare(b.center, a.center)
}

func boolRank(v bool) int {
	if v {
		return 1
	}
	return 0
}

// orderMoves sorts moves in place, best first. Moves that compare equal
// keep their generation order.
func (s *Searcher) orderMoves(moves []game.Move, depth int) {
	keys := make([]scored, len(moves))
	for i, m := range moves {
		keys[i] = scored{
			move:    m,
			capture: game.IsCapture(m),
			killer:  s.killers.contains(depth, m),
			history: s.history[m],
			center:  -game.CenterDistance(m.Destination()),
		}
	}
	slices.SortStableFunc(keys, compareScored)
	for i := range keys {
		moves[i] = keys[i].move
	}
}

// recordCutoff updates the ordering tables after move refuted a node.
func (s *Searcher) recordCutoff(move game.Move, depth int) {
	if !game.IsCapture(move) {
		s.killers.add(depth, move)
	}
	s.history[move] += depth * depth
}
