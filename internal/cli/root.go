// Package cli defines the cobra command tree for scoutroute.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scoutroute",
		Short:         "Plan scouting road trips",
		Long:          "Plan multi-day scouting itineraries: build trip candidates around anchor events, select a maximum-coverage trip set, and report fly-in candidates and unreachable athletes.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newPlanCmd(),
		newVersionCmd(),
	)

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
