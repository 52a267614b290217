package cli

import (
	"github.com/spf13/cobra"

	"github.com/mini-kep/series-gateway/internal/server"
)

type serveOptions struct {
	cfgPath string
}

func newServeCmd() *cobra.Command {
	opts := serveOptions{
		cfgPath: "seriesgw.yaml",
	}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gateway HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run(opts.cfgPath)
		},
	}
	cmd.Flags().StringVarP(&opts.cfgPath, "config", "c", "seriesgw.yaml", "config yaml path")
	return cmd
}
