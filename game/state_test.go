package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// nearTrap is one goat slide (7->12) away from every tiger being blocked.
func nearTrap() *GameState {
	gs := &GameState{GoatsCaptured: 3, Turn: Goats}
	for _, cell := range TigerStarts {
		gs.Board[cell] = Tiger
	}
	for _, cell := range []int{1, 2, 3, 5, 6, 7, 8, 9, 10, 14, 15, 16, 18, 19, 21, 22, 23} {
		gs.Board[cell] = Goat
	}
	return gs
}

func TestNewGameState(t *testing.T) {
	gs := NewGameState()

	for cell, piece := range gs.Board {
		switch cell {
		case 0, 4, 20, 24:
			require.Equal(t, Tiger, piece, "Cell %d should hold a tiger", cell)
		default:
			require.Equal(t, Empty, piece, "Cell %d should be empty", cell)
		}
	}
	require.Equal(t, TotalGoats, gs.GoatsToPlace)
	require.Equal(t, 0, gs.GoatsCaptured)
	require.Equal(t, Goats, gs.Turn)
	require.Equal(t, NoSide, gs.Winner)
	require.Equal(t, PlacementPhase, gs.Phase())
}

func TestGenerateMoves(t *testing.T) {
	t.Run("goats place on every empty cell", func(t *testing.T) {
		moves := NewGameState().GenerateMoves(Goats)

		require.Len(t, moves, Cells-len(TigerStarts))
		for _, m := range moves {
			require.IsType(t, Place{}, m)
		}
	})

	t.Run("tigers slide from the corners", func(t *testing.T) {
		moves := NewGameState().GenerateMoves(Tigers)

		require.Len(t, moves, 12, "Each corner tiger has three empty neighbours")
		require.Contains(t, moves, Move(Slide{From: 0, To: 6}))
	})

	t.Run("tigers capture over adjacent goats", func(t *testing.T) {
		gs := NewGameState()
		require.NoError(t, gs.Apply(Place{To: 1}))

		moves := gs.GenerateMoves(Tigers)

		require.Contains(t, moves, Move(Capture{From: 0, Over: 1, To: 2}))
		require.Equal(t, []Move{Capture{From: 0, Over: 1, To: 2}}, gs.Captures())
	})

	t.Run("goats slide once placement is over", func(t *testing.T) {
		gs := nearTrap()

		moves := gs.GenerateMoves(Goats)

		require.NotEmpty(t, moves)
		for _, m := range moves {
			require.IsType(t, Slide{}, m)
		}
		require.Contains(t, moves, Move(Slide{From: 7, To: 12}))
	})

	t.Run("no legal moves once decided", func(t *testing.T) {
		gs := NewGameState()
		gs.Winner = Tigers

		require.Nil(t, gs.LegalMoves())
	})
}

func TestApplyRejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func() *GameState
		move  Move
		err   error
	}{
		{"tiger moving on goat turn", NewGameState, Slide{From: 0, To: 1}, ErrWrongTurn},
		{"place on occupied cell", NewGameState, Place{To: 0}, ErrIllegalMove},
		{"place out of range", NewGameState, Place{To: 25}, ErrIllegalMove},
		{"goat slide during placement", func() *GameState {
			gs := NewGameState()
			gs.Board[7] = Goat
			return gs
		}, Slide{From: 7, To: 12}, ErrIllegalMove},
		{"slide from empty cell", NewGameState, Slide{From: 12, To: 13}, ErrIllegalMove},
		{"slide to non adjacent cell", func() *GameState {
			gs := NewGameState()
			gs.Turn = Tigers
			return gs
		}, Slide{From: 0, To: 2}, ErrIllegalMove},
		{"slide diagonally from odd cell", func() *GameState {
			gs := NewGameState()
			gs.Turn = Tigers
			gs.Board[0], gs.Board[1] = Empty, Tiger
			return gs
		}, Slide{From: 1, To: 5}, ErrIllegalMove},
		{"capture on goat turn", NewGameState, Capture{From: 0, Over: 1, To: 2}, ErrWrongTurn},
		{"capture without a goat", func() *GameState {
			gs := NewGameState()
			gs.Turn = Tigers
			return gs
		}, Capture{From: 0, Over: 1, To: 2}, ErrIllegalMove},
		{"capture with wrong landing", func() *GameState {
			gs := NewGameState()
			gs.Board[1] = Goat
			gs.Turn = Tigers
			return gs
		}, Capture{From: 0, Over: 1, To: 3}, ErrIllegalMove},
		{"capture onto occupied landing", func() *GameState {
			gs := NewGameState()
			gs.Board[1], gs.Board[2] = Goat, Goat
			gs.Turn = Tigers
			return gs
		}, Capture{From: 0, Over: 1, To: 2}, ErrIllegalMove},
		{"nil move", NewGameState, nil, ErrIllegalMove},
		{"move after the game is decided", func() *GameState {
			gs := NewGameState()
			gs.Winner = Goats
			return gs
		}, Place{To: 12}, ErrGameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := tt.setup()
			before := *gs

			err := gs.Apply(tt.move)

			require.ErrorIs(t, err, tt.err)
			require.Equal(t, before, *gs, "Position should not change on a rejected move")
		})
	}
}

func TestApply(t *testing.T) {
	t.Run("placing a goat", func(t *testing.T) {
		gs := NewGameState()

		require.NoError(t, gs.Apply(Place{To: 12}))

		require.Equal(t, Goat, gs.Board[12])
		require.Equal(t, TotalGoats-1, gs.GoatsToPlace)
		require.Equal(t, Tigers, gs.Turn)
		require.Equal(t, NoSide, gs.Winner)
	})

	t.Run("capturing a goat", func(t *testing.T) {
		gs := NewGameState()
		require.NoError(t, gs.Apply(Place{To: 1}))

		require.NoError(t, gs.Apply(Capture{From: 0, Over: 1, To: 2}))

		require.Equal(t, Empty, gs.Board[0])
		require.Equal(t, Empty, gs.Board[1])
		require.Equal(t, Tiger, gs.Board[2])
		require.Equal(t, 1, gs.GoatsCaptured)
		require.Equal(t, Goats, gs.Turn)
	})

	t.Run("play leaves the original untouched", func(t *testing.T) {
		gs := NewGameState()

		next := gs.Play(Place{To: 12})

		require.Equal(t, Empty, gs.Board[12])
		require.Equal(t, Goat, next.Board[12])
	})

	t.Run("play panics on an illegal move", func(t *testing.T) {
		require.Panics(t, func() {
			NewGameState().Play(Place{To: 0})
		})
	})
}

func TestPlacementExhaustion(t *testing.T) {
	// One tiger shuttles between 0 and 1 while goats fill every other cell
	// apart from the remaining tiger corners.
	goatCells := []int{2, 3, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 21, 22, 23}
	gs := NewGameState()

	for i, cell := range goatCells {
		require.NoError(t, gs.Apply(Place{To: cell}), "Placing goat %d", i+1)
		tiger := Slide{From: 0, To: 1}
		if i%2 == 1 {
			tiger = Slide{From: 1, To: 0}
		}
		require.NoError(t, gs.Apply(tiger), "Tiger move %d", i+1)
	}

	require.Equal(t, 0, gs.GoatsToPlace)
	require.Equal(t, MovementPhase, gs.Phase())
	require.Equal(t, NoSide, gs.Winner)

	require.ErrorIs(t, gs.Apply(Place{To: 1}), ErrIllegalMove, "Placing should be over")
	require.NoError(t, gs.Apply(Slide{From: 2, To: 1}), "Goats should now slide")
}

func TestTigerWin(t *testing.T) {
	gs := NewGameState()
	for i := 0; i < CapturesToWin; i++ {
		require.NoError(t, gs.Apply(Place{To: 1}))
		capture := Capture{From: 0, Over: 1, To: 2}
		if i%2 == 1 {
			capture = Capture{From: 2, Over: 1, To: 0}
		}
		require.NoError(t, gs.Apply(capture))
	}

	require.Equal(t, CapturesToWin, gs.GoatsCaptured)
	require.Equal(t, Tigers, gs.Winner)
	require.True(t, gs.IsTerminal())

	before := *gs
	require.ErrorIs(t, gs.Apply(Place{To: 12}), ErrGameOver)
	require.ErrorIs(t, gs.Apply(Slide{From: 2, To: 3}), ErrGameOver)
	require.Equal(t, before, *gs)
}

func TestGoatWin(t *testing.T) {
	gs := nearTrap()
	require.False(t, gs.tigersBlocked(), "Tigers can still jump onto 12")

	require.NoError(t, gs.Apply(Slide{From: 7, To: 12}))

	require.Empty(t, gs.GenerateMoves(Tigers))
	require.Equal(t, Goats, gs.Winner)
}

func TestHash(t *testing.T) {
	t.Run("copies hash alike", func(t *testing.T) {
		gs := NewGameState()
		require.Equal(t, gs.Hash(), gs.Copy().Hash())
	})

	t.Run("every component changes the hash", func(t *testing.T) {
		base := nearTrap()
		seen := map[StateHash]bool{base.Hash(): true}

		variants := []func(gs *GameState){
			func(gs *GameState) { gs.Turn = Tigers },
			func(gs *GameState) { gs.GoatsCaptured = 4 },
			func(gs *GameState) { gs.GoatsToPlace = 1 },
			func(gs *GameState) { gs.Board[12] = Goat },
			func(gs *GameState) { gs.Board[12] = Tiger },
		}
		for i, change := range variants {
			gs := base.Copy()
			change(gs)
			h := gs.Hash()
			require.False(t, seen[h], "Variant %d should hash differently", i)
			seen[h] = true
		}
	})
}
