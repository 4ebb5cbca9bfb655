package main

import (
	"fmt"

	"github.com/jonathan/portfolio-builder/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes the registry, portfolio, resume and marketplace endpoints.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL environment variable is required")
			}

			logger, err := root.logger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			srv, err := server.NewFromConfig(cmd.Context(), cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			if cfg.APIKey == "" {
				logger.Warn("GEMINI_API_KEY not set, resume parsing and project descriptions are disabled")
			}
			logger.Info("configuration loaded",
				zap.Int("port", cfg.Port),
				zap.String("default_preset", cfg.DefaultPreset),
				zap.Duration("marketplace_cache_ttl", cfg.CacheTTL()),
				zap.Bool("use_browser", cfg.UseBrowser))

			return srv.Start(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (overrides PORT and the config file)")
	return cmd
}
