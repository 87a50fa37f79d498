package searcher

import (
	"sync"
	"time"

	"baghchal/experiments/metrics"
	"baghchal/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(s *Searcher)

// Searcher owns the transposition, killer and history tables. They persist
// across ChooseMove calls until Clear. Calls on one Searcher are
// serialised; use one Searcher per player for concurrent games.
type Searcher struct {
	mu       sync.Mutex
	table    table
	killers  killers
	history  history
	rng      *rand.Rand
	evaluate game.Evaluator
	metrics  metrics.Collector
}

func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithEvaluationFn(evaluate game.Evaluator) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

func New(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		table:    table{},
		killers:  killers{},
		history:  history{},
		evaluate: game.EvaluateHeuristic,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return s
}

// ChooseMove picks a move for side in gs. gs is never modified. A nil move
// means there was none to play: the game is over, side has no legal move,
// or the time budget ran out before depth 1 completed.
func (s *Searcher) ChooseMove(gs *game.GameState, side game.Side, cfg Config) (game.Move, metrics.SearchMetric) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg = normalize(cfg)
	s.metrics.Start(cfg.String())

	var move game.Move
	if root, ok := s.root(gs, side); ok {
		switch c := cfg.(type) {
		case FixedDepth:
			move = s.fixedDepth(root, c)
		case TimeBudget:
			move = s.iterativeDeepening(root, c)
		}
	}

	metric := s.metrics.Complete()
	log.Debug().
		Stringer("side", side).
		Stringer("config", cfg).
		Stringer("move", move).
		Int("depth", metric.Depth).
		Int("nodes", metric.Nodes).
		Msg("move-chosen")
	return move, metric
}

// root returns the private copy the search runs on, with side to move.
func (s *Searcher) root(gs *game.GameState, side game.Side) (*game.GameState, bool) {
	if gs == nil || gs.IsTerminal() {
		return nil, false
	}
	if side != game.Goats && side != game.Tigers {
		log.Warn().Msgf("cannot search for side %s", side)
		return nil, false
	}
	root := gs.Copy()
	if root.Turn != side {
		log.Warn().Msgf("searching for %s while %s is to move", side, root.Turn)
		root.Turn = side
	}
	return root, true
}

// Clear empties the transposition, killer and history tables.
func (s *Searcher) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = table{}
	s.killers = killers{}
	s.history = history{}
}
