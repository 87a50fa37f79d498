package experiments

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"baghchal/engine"
	"baghchal/experiments/metrics"
	"baghchal/game"
	"baghchal/meta"
	"baghchal/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const DefaultEvaluator = "heuristic"

var ErrInvalidMatchUp = errors.New("invalid matchup")

var Evaluators = map[string]game.Evaluator{
	"heuristic": game.EvaluateHeuristic,
	"material":  game.EvaluateMaterial,
}

// Agent is one searcher configuration taking part in an experiment.
type Agent struct {
	ID        int
	Preset    string
	Config    searcher.Config
	Evaluator string
}

func (a Agent) record() metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:          a.ID,
		Name:        a.Preset,
		Description: a.Config.String(),
		Evaluator:   a.Evaluator,
	}
}

type MatchUp struct {
	Goat  Agent
	Tiger Agent
}

type Experiment struct {
	Name        string
	Agents      []Agent
	MatchUps    []MatchUp
	Games       int // per matchup
	Concurrency int
	MaxPlies    int
	Seed        uint64
	Progress    func(done, total int)
}

type Result struct {
	Games    []metrics.GameRecord
	Searches []metrics.SearchRecord
}

// NewExperiment parses matchups written as goat:tiger, where each side is
// a preset name optionally followed by @evaluator.
func NewExperiment(name string, presets map[string]searcher.Config, matchUps []string) (*Experiment, error) {
	if len(matchUps) == 0 {
		return nil, fmt.Errorf("%w: no matchups given", ErrInvalidMatchUp)
	}
	e := &Experiment{
		Name:        name,
		Games:       meta.GAMES,
		Concurrency: meta.CONCURRENCY,
		MaxPlies:    meta.MAX_PLIES,
		Seed:        uint64(time.Now().UnixNano()),
	}
	agents := map[string]Agent{}
	agent := func(spec string) (Agent, error) {
		preset, evaluator, found := strings.Cut(spec, "@")
		if !found {
			evaluator = DefaultEvaluator
		}
		if _, ok := Evaluators[evaluator]; !ok {
			return Agent{}, fmt.Errorf("%w: unknown evaluator %q", ErrInvalidMatchUp, evaluator)
		}
		cfg, ok := presets[preset]
		if !ok {
			return Agent{}, fmt.Errorf("%w: %w: %q", ErrInvalidMatchUp, searcher.ErrUnknownPreset, preset)
		}
		key := preset + "@" + evaluator
		if a, ok := agents[key]; ok {
			return a, nil
		}
		a := Agent{ID: len(agents) + 1, Preset: preset, Config: cfg, Evaluator: evaluator}
		agents[key] = a
		e.Agents = append(e.Agents, a)
		return a, nil
	}

	for _, m := range matchUps {
		goatSpec, tigerSpec, found := strings.Cut(m, ":")
		if !found {
			return nil, fmt.Errorf("%w: %q is not goat:tiger", ErrInvalidMatchUp, m)
		}
		goat, err := agent(goatSpec)
		if err != nil {
			return nil, err
		}
		tiger, err := agent(tigerSpec)
		if err != nil {
			return nil, err
		}
		e.MatchUps = append(e.MatchUps, MatchUp{Goat: goat, Tiger: tiger})
	}
	return e, nil
}

func (e *Experiment) AgentConfigs() []metrics.AgentConfig {
	configs := make([]metrics.AgentConfig, len(e.Agents))
	for i, a := range e.Agents {
		configs[i] = a.record()
	}
	return configs
}

type job struct {
	id      int
	matchUp MatchUp
	seed    uint64
}

type played struct {
	game     metrics.GameRecord
	searches []metrics.SearchRecord
}

// Run plays every game, Concurrency at a time. Each game gets fresh
// searchers so no tables are shared between goroutines.
func (e *Experiment) Run(ctx context.Context) (Result, error) {
	total := len(e.MatchUps) * e.Games
	log.Info().Msgf("starting %s experiment with %d games...", e.Name, total)

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan job)
	results := make(chan played)

	g.Go(func() error {
		defer close(jobs)
		id := 0
		for _, m := range e.MatchUps {
			for i := 0; i < e.Games; i++ {
				id++
				j := job{id: id, matchUp: m, seed: e.Seed + uint64(2*id)}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case jobs <- j:
				}
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < max(e.Concurrency, 1); i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for j := range jobs {
				p := e.play(j)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case results <- p:
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	var result Result
	g.Go(func() error {
		for p := range results {
			result.Games = append(result.Games, p.game)
			result.Searches = append(result.Searches, p.searches...)
			if e.Progress != nil {
				e.Progress(len(result.Games), total)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("experiment %s interrupted: %w", e.Name, err)
	}

	slices.SortFunc(result.Games, func(a, b metrics.GameRecord) int { return a.ID - b.ID })
	slices.SortStableFunc(result.Searches, func(a, b metrics.SearchRecord) int { return a.Game - b.Game })
	log.Info().Msgf("completed %s experiment", e.Name)
	return result, nil
}

func (e *Experiment) play(j job) played {
	goat := newAgent(j.matchUp.Goat, j.seed)
	tiger := newAgent(j.matchUp.Tiger, j.seed+1)
	eng := engine.NewLocalEngine(goat, tiger, engine.WithMaxPlies(e.MaxPlies))

	winner, gameMetric, moveMetrics := eng.Run()
	log.Info().
		Int("game", j.id).
		Str("goat", j.matchUp.Goat.Preset).
		Str("tiger", j.matchUp.Tiger.Preset).
		Stringer("winner", winner).
		Int("plies", gameMetric.TotalPlies).
		Msg("game-completed")

	p := played{game: metrics.GameRecord{
		ID:         j.id,
		GoatAgent:  j.matchUp.Goat.ID,
		TigerAgent: j.matchUp.Tiger.ID,
		GameMetric: gameMetric,
	}}
	for _, mm := range moveMetrics {
		p.searches = append(p.searches, metrics.SearchRecord{Game: j.id, MoveMetric: mm})
	}
	return p
}

func newAgent(a Agent, seed uint64) *engine.SearchAgent {
	return engine.NewSearchAgent(a.Config,
		searcher.WithSeed(seed),
		searcher.WithEvaluationFn(Evaluators[a.Evaluator]),
		searcher.WithMetrics(),
	)
}

// Write stores the agent configurations and results under
// root/<name>/<timestamp> and returns that directory.
func (e *Experiment) Write(root string, result Result) (string, error) {
	writer, err := metrics.NewWriter(root, e.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(e.AgentConfigs())
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(result.Games)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteSearchRecords(result.Searches)
	if err != nil {
		return "", fmt.Errorf("failed to write search records: %w", err)
	}
	log.Info().Msg("stored search records")

	return writer.Dir(), nil
}

// Summary is the tally of one goat agent against one tiger agent.
type Summary struct {
	GoatAgent  int
	TigerAgent int
	GoatWins   int
	TigerWins  int
	Unfinished int
	AvgPlies   float64
}

func (r Result) Summaries() []Summary {
	var summaries []Summary
	index := map[[2]int]int{}
	plies := map[[2]int]int{}
	for _, g := range r.Games {
		key := [2]int{g.GoatAgent, g.TigerAgent}
		i, ok := index[key]
		if !ok {
			i = len(summaries)
			index[key] = i
			summaries = append(summaries, Summary{GoatAgent: g.GoatAgent, TigerAgent: g.TigerAgent})
		}
		switch g.Winner {
		case game.Goats.String():
			summaries[i].GoatWins++
		case game.Tigers.String():
			summaries[i].TigerWins++
		default:
			summaries[i].Unfinished++
		}
		plies[key] += g.TotalPlies
	}
	for key, i := range index {
		s := &summaries[i]
		s.AvgPlies = float64(plies[key]) / float64(s.GoatWins+s.TigerWins+s.Unfinished)
	}
	return summaries
}
