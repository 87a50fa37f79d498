package searcher

import (
	"errors"
	"math"
	"time"

	"baghchal/game"

	"github.com/rs/zerolog/log"
)

const (
	WinScore      = 100000.0
	MateHorizon   = 10 // terminal scores shift by MateHorizon - remaining depth
	DecisiveScore = 90000.0
)

var errTimeout = errors.New("search timed out")

// search is a single ChooseMove call running against the Searcher's tables.
type search struct {
	*Searcher
	start   time.Time
	budget  time.Duration
	limited bool
}

func (s *Searcher) newSearch(budget time.Duration, limited bool) *search {
	return &search{
		Searcher: s,
		start:    time.Now(),
		budget:   budget,
		limited:  limited,
	}
}

func (s *search) expired() bool {
	return s.limited && time.Since(s.start) > s.budget
}

// perspective converts a goat-perspective score to the side to move.
func perspective(side game.Side) float64 {
	if side == game.Tigers {
		return -1
	}
	return 1
}

// terminal scores a decided position for the side to move, preferring
// quicker wins and slower losses.
func terminal(gs *game.GameState, depth int) (float64, bool) {
	var score float64
	switch gs.Winner {
	case game.Tigers:
		score = -WinScore + float64(MateHorizon-depth)
	case game.Goats:
		score = WinScore - float64(MateHorizon-depth)
	default:
		return 0, false
	}
	return perspective(gs.Turn) * score, true
}

func (s *search) staticScore(gs *game.GameState) float64 {
	return perspective(gs.Turn) * s.evaluate(gs)
}

// negamax returns the score of gs for the side to move and the move that
// achieves it. errTimeout is returned unchanged from any depth.
func (s *search) negamax(gs *game.GameState, depth int, alpha, beta float64) (float64, game.Move, error) {
	if s.expired() {
		return 0, nil, errTimeout
	}
	s.metrics.AddNode()

	if score, ok := terminal(gs, depth); ok {
		return score, nil, nil
	}

	hash := gs.Hash()
	e, alpha, beta, hit := s.table.probe(hash, depth, alpha, beta)
	if hit {
		s.metrics.AddTTHit()
		return e.score, e.move, nil
	}

	if depth <= 0 {
		score, err := s.quiescence(gs, math.Inf(-1), math.Inf(1))
		return score, nil, err
	}

	moves := gs.LegalMoves()
	if len(moves) == 0 {
		return s.staticScore(gs), nil, nil
	}
	s.orderMoves(moves, depth)

	origAlpha := alpha
	best := math.Inf(-1)
	var bestMove game.Move
	for _, m := range moves {
		v, _, err := s.negamax(gs.Play(m), depth-1, -beta, -alpha)
		if err != nil {
			return 0, nil, err
		}
		score := -v
		if score > best {
			best, bestMove = score, m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.metrics.AddCutoff()
			s.recordCutoff(m, depth)
			break
		}
	}

	s.table.store(hash, depth, best, origAlpha, beta, bestMove)
	return best, bestMove, nil
}

// quiescence resolves pending captures before scoring. Goats never capture,
// so a goat to move is scored statically.
func (s *search) quiescence(gs *game.GameState, alpha, beta float64) (float64, error) {
	if s.expired() {
		return 0, errTimeout
	}
	s.metrics.AddQuiescenceNode()

	if score, ok := terminal(gs, 0); ok {
		return score, nil
	}

	standPat := s.staticScore(gs)
	if gs.Turn == game.Goats {
		return standPat, nil
	}
	if standPat >= beta {
		return beta, nil
	}
	alpha = max(alpha, standPat)

	for _, m := range gs.Captures() {
		v, err := s.quiescence(gs.Play(m), -beta, -alpha)
		if err != nil {
			return 0, err
		}
		score := -v
		if score >= beta {
			return beta, nil
		}
		alpha = max(alpha, score)
	}
	return alpha, nil
}

// iterativeDeepening keeps the move of the deepest completed iteration.
func (s *Searcher) iterativeDeepening(root *game.GameState, cfg TimeBudget) game.Move {
	sr := s.newSearch(cfg.Budget, true)
	var best game.Move

	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		score, move, err := sr.negamax(root, depth, math.Inf(-1), math.Inf(1))
		if errors.Is(err, errTimeout) {
			s.metrics.SetTimedOut()
			log.Debug().Int("depth", depth).Dur("elapsed", time.Since(sr.start)).Msg("search-timed-out")
			break
		}
		if move != nil {
			best = move
		}
		s.metrics.SetDepth(depth, score)
		log.Debug().Int("depth", depth).Float64("score", score).Stringer("move", move).Msg("deepening-iteratively")

		if math.Abs(score) >= DecisiveScore {
			break
		}
		if sr.expired() {
			break
		}
	}
	return best
}

// fixedDepth scores every root move with a full window and picks one of the
// best at random.
func (s *Searcher) fixedDepth(root *game.GameState, cfg FixedDepth) game.Move {
	moves := root.LegalMoves()
	if len(moves) == 0 {
		return nil
	}
	if cfg.Noise > 0 && s.rng.Float64() < cfg.Noise {
		s.metrics.SetRandomMove()
		return moves[s.rng.Intn(len(moves))]
	}

	depth := cfg.depthFor(root.Turn)
	sr := s.newSearch(0, false)
	best := math.Inf(-1)
	var candidates []game.Move
	for _, m := range moves {
		v, _, err := sr.negamax(root.Play(m), depth-1, math.Inf(-1), math.Inf(1))
		if err != nil {
			// Unlimited searches cannot time out.
			panic(err)
		}
		score := -v
		if score > best {
			best = score
			candidates = append(candidates[:0], m)
		} else if score == best {
			candidates = append(candidates, m)
		}
	}
	s.metrics.SetDepth(depth, best)
	return candidates[s.rng.Intn(len(candidates))]
}
