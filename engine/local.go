package engine

import (
	"time"

	"baghchal/experiments/metrics"
	"baghchal/game"
	"baghchal/meta"

	"github.com/rs/zerolog/log"
)

type Option func(e *LocalEngine)

// WithMaxPlies caps the game length. The cap is a harness limit, a capped
// game has no winner.
func WithMaxPlies(plies int) Option {
	return func(e *LocalEngine) {
		if plies > 0 {
			e.maxPlies = plies
		}
	}
}

func WithObserver(fn func(Update)) Option {
	return func(e *LocalEngine) {
		if fn != nil {
			e.host.Observe(fn)
		}
	}
}

// WithSnapshot starts the game from s instead of the opening position.
// An invalid snapshot panics.
func WithSnapshot(s game.Snapshot) Option {
	return func(e *LocalEngine) {
		if err := e.host.Load(s); err != nil {
			panic(err)
		}
	}
}

type LocalEngine struct {
	host     *Host
	agents   map[game.Side]Agent
	maxPlies int
}

func NewLocalEngine(goat, tiger Agent, options ...Option) *LocalEngine {
	if goat == nil || tiger == nil {
		panic("both sides need an agent")
	}
	e := &LocalEngine{
		host:     NewHost(),
		agents:   map[game.Side]Agent{game.Goats: goat, game.Tigers: tiger},
		maxPlies: meta.MAX_PLIES,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// State returns a copy of the current position.
func (e *LocalEngine) State() *game.GameState {
	return e.host.State()
}

func (e *LocalEngine) Run() (game.Side, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	state := e.host.State()
	for !state.IsTerminal() && e.host.Ply() < e.maxPlies {
		side := state.Turn
		move, searchMetric := e.agents[side].FindMove(state)
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Ply:          e.host.Ply() + 1,
			Side:         side.String(),
			SearchMetric: searchMetric,
		})

		if err := e.host.Play(move); err != nil {
			legal := state.LegalMoves()
			if len(legal) == 0 {
				log.Info().Msgf("%s has no legal move at ply %d, stopping", side, e.host.Ply())
				break
			}
			log.Warn().Err(err).Msgf("%s agent returned an invalid move, playing %s instead", side, legal[0])
			if err := e.host.Play(legal[0]); err != nil {
				panic(err)
			}
		}
		state = e.host.State()
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalPlies = e.host.Ply()
	gameMetric.GoatsCaptured = state.GoatsCaptured
	gameMetric.Winner = state.Winner.String()
	gameMetric.PlyCapReached = !state.IsTerminal() && e.host.Ply() >= e.maxPlies

	if state.IsTerminal() {
		log.Info().Msgf("%s won after %d plies", state.Winner, gameMetric.TotalPlies)
	} else {
		log.Info().Msgf("stopped after %d plies without a winner", gameMetric.TotalPlies)
	}
	return state.Winner, gameMetric, moveMetrics
}
