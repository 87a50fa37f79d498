package cli

import (
	"baghchal/experiments"
	"baghchal/searcher"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "baghchal",
		Short: "Search engine tooling for Tigers and Goats",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// If --trace flag is provided, set logging level to Trace.
			if cmd.Flag("trace").Changed {
				zerolog.SetGlobalLevel(zerolog.TraceLevel)
			}
		},
	}

	// global flags
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().String("presets", "", "Presets file (default $XDG_CONFIG_HOME/baghchal/presets.yaml)")

	root.AddCommand(SelfPlay())
	root.AddCommand(Experiment())
	root.AddCommand(Presets())

	return root
}

func loadPresets(cmd *cobra.Command) (map[string]searcher.Config, error) {
	path, err := cmd.Flags().GetString("presets")
	if err != nil {
		return nil, err
	}
	return experiments.LoadPresets(path)
}
