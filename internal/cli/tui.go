package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mini-kep/series-gateway/internal/tui"
)

func newTuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive path decoder",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(os.Stdin, os.Stdout)
		},
	}
}
