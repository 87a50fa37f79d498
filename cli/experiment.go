package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"baghchal/experiments"
	"baghchal/meta"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

const SPIN = 14

// baghchal experiment
func Experiment() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "experiment goat:tiger...",
		Short: "Play preset matchups and record the results",
		Args:  cobra.MinimumNArgs(1),
		Long: heredoc.Doc(`experiment plays --games games for every matchup and
			writes agent_configs.csv, game_records.csv and search_records.csv
			to <out>/<name>/<timestamp>.

			A matchup is written goat:tiger, where each side is a preset
			name optionally followed by @evaluator (heuristic or material),
			for example hard:medium or hard@material:hard.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := loadPresets(cmd)
			if err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("name")
			e, err := experiments.NewExperiment(name, presets, args)
			if err != nil {
				return err
			}
			e.Games, _ = cmd.Flags().GetInt("games")
			e.Concurrency, _ = cmd.Flags().GetInt("concurrency")
			e.MaxPlies, _ = cmd.Flags().GetInt("plies")
			if cmd.Flag("seed").Changed {
				e.Seed, _ = cmd.Flags().GetUint64("seed")
			}
			out, _ := cmd.Flags().GetString("out")

			s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
			e.Progress = func(done, total int) {
				s.Lock()
				s.Suffix = fmt.Sprintf(" %d/%d games", done, total)
				s.Unlock()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			s.Start()
			result, err := e.Run(ctx)
			s.Stop()
			if err != nil {
				return err
			}

			dir, err := e.Write(out, result)
			if err != nil {
				return err
			}

			names := map[int]string{}
			for _, a := range e.Agents {
				names[a.ID] = a.Preset + "@" + a.Evaluator
			}
			w := cmd.OutOrStdout()
			for _, sum := range result.Summaries() {
				fmt.Fprintf(w, "%s vs %s: goats %d, tigers %d, unfinished %d, %.1f plies on average\n",
					names[sum.GoatAgent], names[sum.TigerAgent], sum.GoatWins, sum.TigerWins, sum.Unfinished, sum.AvgPlies)
			}
			fmt.Fprintf(w, "results written to %s\n", dir)
			return nil
		},
	}

	cmd.Flags().String("name", "matchups", "Experiment name")
	cmd.Flags().Int("games", meta.GAMES, "Games per matchup")
	cmd.Flags().Int("concurrency", meta.CONCURRENCY, "Games played at once")
	cmd.Flags().Int("plies", meta.MAX_PLIES, "Maximum number of plies per game")
	cmd.Flags().String("out", meta.OUTPUT_DIR, "Output directory")
	cmd.Flags().Uint64("seed", 0, "Base seed (default random)")

	return cmd
}
