package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/streetsweeper/internal/cache"
	"github.com/streetsweeper/internal/config"
	"github.com/streetsweeper/internal/web"
)

// createServeCmd runs the HTTP API until interrupted.
func createServeCmd(debugFlag *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the parse API over HTTP",
		Long:  `Serve /api/parse, /api/parse/batch, /api/states/{code}, /healthz and /metrics. Settings come from the environment and .env.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			p, err := newParser(*debugFlag || cfg.Debug)
			if err != nil {
				return err
			}

			var c cache.Cache = cache.Noop{}
			if cfg.RedisAddr != "" {
				ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
				client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
				cancel()
				if err != nil {
					return err
				}
				defer client.Close()
				c = cache.NewRedis(client, cfg.CacheTTL)
				log.Printf("Parse cache: redis %s (ttl %v)", cfg.RedisAddr, cfg.CacheTTL)
			}

			server, err := web.NewServer(web.NewConfig(cfg), p, c)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return server.Start()
		},
	}
}
