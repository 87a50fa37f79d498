package engine

import (
	"baghchal/experiments/metrics"
	"baghchal/game"
	"baghchal/searcher"
)

type Engine interface {
	// Run plays a game until there's a winner, the side to move is stuck or
	// the ply cap is reached
	Run() (winner game.Side, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Agent picks moves for whichever side is to move in gs. A nil move means
// the agent found none.
type Agent interface {
	FindMove(gs *game.GameState) (game.Move, metrics.SearchMetric)
}

// SearchAgent plays with a Searcher at a fixed difficulty.
type SearchAgent struct {
	Searcher *searcher.Searcher
	Config   searcher.Config
}

func NewSearchAgent(config searcher.Config, options ...searcher.Option) *SearchAgent {
	return &SearchAgent{
		Searcher: searcher.New(options...),
		Config:   config,
	}
}

func (a *SearchAgent) FindMove(gs *game.GameState) (game.Move, metrics.SearchMetric) {
	return a.Searcher.ChooseMove(gs, gs.Turn, a.Config)
}
