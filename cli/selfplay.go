package cli

import (
	"fmt"
	"strings"
	"time"

	"baghchal/engine"
	"baghchal/game"
	"baghchal/meta"
	"baghchal/searcher"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// baghchal selfplay
func SelfPlay() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Play one game between two presets",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`selfplay plays a single game with one preset on each
			side and prints the result. Every ply is logged at debug level
			and the board after every ply at trace level.

			The game stops when a side wins, when the side to move has no
			legal move, or after --plies plies.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := loadPresets(cmd)
			if err != nil {
				return err
			}

			goatName, _ := cmd.Flags().GetString("goat")
			tigerName, _ := cmd.Flags().GetString("tiger")
			plies, _ := cmd.Flags().GetInt("plies")
			seed, _ := cmd.Flags().GetUint64("seed")
			if !cmd.Flag("seed").Changed {
				seed = uint64(time.Now().UnixNano())
			}

			goatConfig, ok := presets[goatName]
			if !ok {
				return fmt.Errorf("%w: %q", searcher.ErrUnknownPreset, goatName)
			}
			tigerConfig, ok := presets[tigerName]
			if !ok {
				return fmt.Errorf("%w: %q", searcher.ErrUnknownPreset, tigerName)
			}

			goat := engine.NewSearchAgent(goatConfig, searcher.WithSeed(seed), searcher.WithMetrics())
			tiger := engine.NewSearchAgent(tigerConfig, searcher.WithSeed(seed+1), searcher.WithMetrics())
			e := engine.NewLocalEngine(goat, tiger,
				engine.WithMaxPlies(plies),
				engine.WithObserver(func(u engine.Update) {
					log.Debug().Int("ply", u.Ply).Stringer("side", u.Side).Stringer("move", u.Move).Msg("ply")
					log.Trace().Msg("\n" + renderBoard(u.Snapshot))
				}),
			)

			winner, gameMetric, _ := e.Run()
			if winner == game.NoSide {
				fmt.Fprintf(cmd.OutOrStdout(), "no winner after %d plies (%d goats captured)\n",
					gameMetric.TotalPlies, gameMetric.GoatsCaptured)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s won after %d plies (%d goats captured)\n",
					winner, gameMetric.TotalPlies, gameMetric.GoatsCaptured)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderBoard(e.State().Snapshot()))
			return nil
		},
	}

	cmd.Flags().String("goat", "hard", "Preset playing the goats")
	cmd.Flags().String("tiger", "hard", "Preset playing the tigers")
	cmd.Flags().Int("plies", meta.MAX_PLIES, "Maximum number of plies")
	cmd.Flags().Uint64("seed", 0, "Seed for noise and tie-breaks (default random)")

	return cmd
}

func renderBoard(s game.Snapshot) string {
	var b strings.Builder
	for row := 0; row < game.Size; row++ {
		for col := 0; col < game.Size; col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			switch s.Board[game.Index(row, col)] {
			case game.Goat:
				b.WriteByte('G')
			case game.Tiger:
				b.WriteByte('T')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "to place %d, captured %d, %s to move\n", s.GoatsToPlace, s.GoatsCaptured, s.Turn)
	return b.String()
}
