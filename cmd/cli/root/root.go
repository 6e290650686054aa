package root

import (
	"github.com/spf13/cobra"
)

// RootCmd is the top-level fittrack command.
var RootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "Exercise tracker CLI",
	Long:  "Command line interface for the fittrack exercise-tracking API",
}

// GetRoot returns the root command so subcommand packages can attach to it.
func GetRoot() *cobra.Command {
	return RootCmd
}
