package searcher

import (
	"math"
	"testing"
	"time"

	"baghchal/game"

	"github.com/stretchr/testify/require"
)

// oneGoatShort has four goats captured and a fifth hanging on cell 1.
func oneGoatShort() *game.GameState {
	gs := game.NewGameState()
	gs.Board[1] = game.Goat
	gs.GoatsCaptured = 4
	gs.GoatsToPlace = game.TotalGoats - 1 - 4
	gs.Turn = game.Tigers
	return gs
}

// oneSlideFromTrap is won for the goats by sliding 7 to 12.
func oneSlideFromTrap() *game.GameState {
	gs := &game.GameState{GoatsCaptured: 3, Turn: game.Goats}
	for _, cell := range game.TigerStarts {
		gs.Board[cell] = game.Tiger
	}
	for _, cell := range []int{1, 2, 3, 5, 6, 7, 8, 9, 10, 14, 15, 16, 18, 19, 21, 22, 23} {
		gs.Board[cell] = game.Goat
	}
	return gs
}

func TestChooseMove(t *testing.T) {
	t.Run("fixed depth is deterministic for equal seeds", func(t *testing.T) {
		cfg := FixedDepth{DepthGoat: 2, DepthTiger: 2}
		gs := game.NewGameState()

		move1, _ := New(WithSeed(7)).ChooseMove(gs, game.Goats, cfg)
		move2, _ := New(WithSeed(7)).ChooseMove(gs, game.Goats, cfg)

		require.NotNil(t, move1)
		require.Equal(t, move1, move2, "Independent searchers with cleared tables should agree")
	})

	t.Run("tiger takes the winning capture", func(t *testing.T) {
		for _, cfg := range []Config{
			FixedDepth{DepthGoat: 1, DepthTiger: 1},
			FixedDepth{DepthGoat: 3, DepthTiger: 3},
			TimeBudget{Budget: 5 * time.Second, MaxDepth: 4},
		} {
			move, _ := New(WithSeed(1)).ChooseMove(oneGoatShort(), game.Tigers, cfg)
			require.Equal(t, game.Capture{From: 0, Over: 1, To: 2}, move, "Config %s", cfg)
		}
	})

	t.Run("goat closes the trap", func(t *testing.T) {
		move, metric := New(WithSeed(1), WithMetrics()).ChooseMove(oneSlideFromTrap(), game.Goats,
			TimeBudget{Budget: 5 * time.Second, MaxDepth: 6})

		require.Equal(t, game.Slide{From: 7, To: 12}, move)
		require.Equal(t, 1, metric.Depth, "Decisive score should stop deepening")
		require.GreaterOrEqual(t, metric.Score, DecisiveScore)
	})

	t.Run("zero budget does not crash", func(t *testing.T) {
		gs := game.NewGameState()

		move, metric := New(WithMetrics()).ChooseMove(gs, game.Goats, TimeBudget{Budget: 0, MaxDepth: 8})

		if move != nil {
			require.NoError(t, gs.Copy().Apply(move))
			require.Equal(t, 1, metric.Depth)
		} else {
			require.True(t, metric.TimedOut)
		}
	})

	t.Run("caller's position is never modified", func(t *testing.T) {
		gs := game.NewGameState()
		before := *gs

		New(WithSeed(3)).ChooseMove(gs, game.Goats, FixedDepth{DepthGoat: 2, DepthTiger: 2})
		New(WithSeed(3)).ChooseMove(gs, game.Tigers, FixedDepth{DepthGoat: 2, DepthTiger: 2})

		require.Equal(t, before, *gs)
	})

	t.Run("searching for the side not to move", func(t *testing.T) {
		gs := game.NewGameState()

		move, _ := New(WithSeed(3)).ChooseMove(gs, game.Tigers, FixedDepth{DepthGoat: 1, DepthTiger: 1})

		require.IsType(t, game.Slide{}, move, "Tigers only slide at the start")
		require.Equal(t, game.Goats, gs.Turn)
	})

	t.Run("no move once the game is decided", func(t *testing.T) {
		gs := game.NewGameState()
		gs.Winner = game.Goats

		move, _ := New().ChooseMove(gs, game.Goats, nil)

		require.Nil(t, move)
	})

	t.Run("no move for a side without moves", func(t *testing.T) {
		gs := oneSlideFromTrap()
		require.NoError(t, gs.Apply(game.Slide{From: 7, To: 12}))
		gs.Winner = game.NoSide

		move, _ := New().ChooseMove(gs, game.Tigers, FixedDepth{DepthGoat: 2, DepthTiger: 2})

		require.Nil(t, move)
	})

	t.Run("full noise plays a random legal move", func(t *testing.T) {
		gs := game.NewGameState()

		move, metric := New(WithSeed(11), WithMetrics()).ChooseMove(gs, game.Goats,
			FixedDepth{DepthGoat: 4, DepthTiger: 4, Noise: 1})

		require.True(t, metric.RandomMove)
		require.Zero(t, metric.Nodes, "Random moves skip the search")
		require.Contains(t, gs.LegalMoves(), move)
	})

	t.Run("metrics count the search", func(t *testing.T) {
		_, metric := New(WithSeed(5), WithMetrics()).ChooseMove(game.NewGameState(), game.Goats,
			FixedDepth{DepthGoat: 2, DepthTiger: 2})

		require.Equal(t, "fixed(goat=2,tiger=2,noise=0.00)", metric.Config)
		require.Equal(t, 2, metric.Depth)
		require.Positive(t, metric.Nodes)
		require.False(t, metric.TimedOut)
	})

	t.Run("custom evaluator", func(t *testing.T) {
		calls := 0
		evaluate := func(gs *game.GameState) float64 {
			calls++
			return game.EvaluateMaterial(gs)
		}

		move, _ := New(WithSeed(2), WithEvaluationFn(evaluate)).ChooseMove(game.NewGameState(), game.Goats,
			FixedDepth{DepthGoat: 1, DepthTiger: 1})

		require.NotNil(t, move)
		require.Positive(t, calls)
	})
}

func TestClear(t *testing.T) {
	s := New(WithSeed(1))
	s.ChooseMove(oneGoatShort(), game.Tigers, FixedDepth{DepthGoat: 3, DepthTiger: 3})
	require.NotEmpty(t, s.table)

	s.Clear()

	require.Empty(t, s.table)
	require.Empty(t, s.killers)
	require.Empty(t, s.history)
}

func TestTerminalScore(t *testing.T) {
	gs := game.NewGameState()
	gs.Winner = game.Tigers

	score, ok := terminal(gs, 0)
	require.True(t, ok)
	require.Equal(t, -WinScore+MateHorizon, score, "Goats to move have lost")

	gs.Turn = game.Tigers
	score, _ = terminal(gs, 2)
	require.Equal(t, WinScore-MateHorizon+2, score, "Tigers to move have won, deeper is sooner")

	gs.Winner = game.Goats
	score, _ = terminal(gs, 3)
	require.Equal(t, -(WinScore - MateHorizon + 3), score)

	gs.Winner = game.NoSide
	_, ok = terminal(gs, 0)
	require.False(t, ok)
}

func TestQuiescence(t *testing.T) {
	t.Run("goats to move are scored statically", func(t *testing.T) {
		gs := game.NewGameState()
		sr := New().newSearch(0, false)

		score, err := sr.quiescence(gs, math.Inf(-1), math.Inf(1))

		require.NoError(t, err)
		require.InDelta(t, game.EvaluateHeuristic(gs), score, 1e-9)
	})

	t.Run("tigers extend along captures", func(t *testing.T) {
		gs := game.NewGameState()
		require.NoError(t, gs.Apply(game.Place{To: 1}))
		child := gs.Play(game.Capture{From: 0, Over: 1, To: 2})
		sr := New().newSearch(0, false)

		score, err := sr.quiescence(gs, math.Inf(-1), math.Inf(1))

		require.NoError(t, err)
		require.Greater(t, score, -game.EvaluateHeuristic(gs), "Capture beats standing pat")
		require.InDelta(t, -game.EvaluateHeuristic(child), score, 1e-9)
	})

	t.Run("times out", func(t *testing.T) {
		sr := New().newSearch(0, true)
		time.Sleep(time.Millisecond)

		_, err := sr.quiescence(game.NewGameState(), math.Inf(-1), math.Inf(1))

		require.ErrorIs(t, err, errTimeout)
	})
}

func TestNegamaxTimeout(t *testing.T) {
	sr := New().newSearch(0, true)
	time.Sleep(time.Millisecond)

	_, move, err := sr.negamax(game.NewGameState(), 3, math.Inf(-1), math.Inf(1))

	require.ErrorIs(t, err, errTimeout)
	require.Nil(t, move)
	require.Empty(t, sr.table, "Aborted searches store nothing")
}
