package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

// baghchal presets
func Presets() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the available difficulty presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := loadPresets(cmd)
			if err != nil {
				return err
			}

			for _, name := range slices.Sorted(maps.Keys(presets)) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", name, presets[name])
			}
			return nil
		},
	}
}
