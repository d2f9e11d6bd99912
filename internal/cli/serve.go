package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gpahal/mtrand/api"
	"github.com/gpahal/mtrand/http/server"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the random API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			e := server.NewWithOptions(server.Options{
				LoggerWriter:   cmd.ErrOrStderr(),
				Logger:         &a.logger,
				RequestTimeout: a.cfg.Server.RequestTimeout,
			})
			api.Register(e, api.Options{Random: a.random, DefaultCharset: a.charset()})

			a.logger.Info().Int("port", a.cfg.Server.Port).Msg("serving")
			err := server.StartWithOptions(ctx, e, a.cfg.Server.Port, server.StartOptions{
				GracefulShutdownTimeout: a.cfg.Server.ShutdownTimeout,
			})
			if err != nil {
				return err
			}

			a.logger.Info().Msg("stopped")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on (default: config port)")

	return cmd
}
