package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/api"
)

const defaultAddr = "127.0.0.1:8080"

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
		maxBody int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Routes:
  GET  /healthz      build information
  POST /v1/layout    chart → layout JSON
  POST /v1/render    chart → rendered output (?format=svg|png|pdf|json)
  POST /v1/measure   text metrics
  POST /v1/fit       truncate, shrink or wrap text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			srv := api.NewServer(runner,
				api.WithLogger(loggerFromContext(cmd.Context())),
				api.WithTimeout(timeout),
				api.WithMaxBody(maxBody),
			)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", api.DefaultTimeout, "per-request timeout")
	cmd.Flags().Int64Var(&maxBody, "max-body", api.DefaultMaxBody, "request body limit in bytes")

	return cmd
}
