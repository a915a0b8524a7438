//go:build !js && !wasm

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Its-donkey/lander/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the landing page and its WASM bundle",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
			cfg.Listen = listen
		}
		if dir, _ := cmd.Flags().GetString("assets"); dir != "" {
			cfg.AssetsDir = dir
		}

		logger, closeLog, err := cfg.NewLogger("lander")
		if err != nil {
			return err
		}
		defer closeLog()

		content, err := site.LoadContent(cfg.ContentFile)
		if err != nil {
			return err
		}
		renderer, err := site.NewRenderer()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := site.NewServer(cfg, content, renderer, logger)
		if err := srv.Run(ctx); err != nil {
			logger.Error("server", "server stopped with error", err, nil)
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "override the listen address")
	serveCmd.Flags().String("assets", "", "override the assets directory holding main.wasm")
	rootCmd.AddCommand(serveCmd)
}
