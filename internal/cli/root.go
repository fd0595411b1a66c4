// Package cli implements the introspec command line.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vitalvas/introspec/apispec"
	"github.com/vitalvas/introspec/documenter"
	"github.com/vitalvas/introspec/enrichers/fallback"
	"github.com/vitalvas/introspec/enrichers/reflection"
	"github.com/vitalvas/introspec/internal/config"
	"github.com/vitalvas/introspec/internal/demo"
)

// RootCmd returns the introspec command tree.
func RootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "introspec",
		Short:         "Introspec - API documentation from service metadata",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	config.BindFlags(root)

	root.AddCommand(ServeCommand(version))
	root.AddCommand(DumpCommand())

	return root
}

// setupLogger configures the global logger and returns the main component
// logger.
func setupLogger(cfg *config.Config, out io.Writer, version string) zerolog.Logger {
	zerolog.SetGlobalLevel(cfg.Level())
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	log.Logger = zerolog.New(out).With().
		Timestamp().
		Str("service", "introspec").
		Str("version", version).
		Logger()

	return log.With().Str("component", "main").Logger()
}

// newService wires the demo host through the enricher chain into a spec
// service.
func newService(cfg *config.Config, logger zerolog.Logger) (*apispec.Service, error) {
	h, err := demo.NewHost(cfg.Documenter.Formats...)
	if err != nil {
		return nil, fmt.Errorf("registering operations: %w", err)
	}

	opts := []documenter.Option{
		documenter.WithPolicy(cfg.Strategy()),
		documenter.WithLogger(logger),
		documenter.WithEnrichers(
			reflection.NewFromHost(h,
				reflection.WithReplacementVerbs(cfg.Documenter.ReplacementVerbs...),
				reflection.WithLogger(logger),
			),
			fallback.New(cfg.Documenter.Fallback),
		),
	}

	if path := cfg.Documenter.Overrides; path != "" {
		overrides, err := documenter.LoadOverrides(path)
		if err != nil {
			return nil, fmt.Errorf("loading overrides: %w", err)
		}
		opts = append(opts, documenter.WithOverrides(overrides))
	}

	provider, err := documenter.NewProvider(h, cfg.API, opts...)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	doc := provider.GetApiDocumentation()
	logger.Debug().
		Int("resources", len(doc.Resources)).
		Dur("duration", time.Since(start)).
		Msg("documentation ready")

	return apispec.NewService(provider)
}
