package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vitalvas/introspec/internal/config"
	"github.com/vitalvas/introspec/internal/server"
)

// ServeCommand serves the documentation over HTTP.
func ServeCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the API documentation over HTTP",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return err
			}

			logger := setupLogger(cfg, os.Stderr, version)
			logger.Info().Str("version", version).Msg("starting introspec")

			svc, err := newService(cfg, log.Logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(*cfg, svc, version, log.Logger).Run(ctx)
		},
	}
}
