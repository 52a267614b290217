// Package cli wires the seriesgw command tree.
package cli

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seriesgw",
		Short:         "Time series gateway for the mini-kep data store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newVocabCmd())
	root.AddCommand(newTuiCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}
