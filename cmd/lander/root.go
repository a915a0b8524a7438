//go:build !js && !wasm

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Its-donkey/lander/internal/site"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "lander",
	Short:         "Serve and check the landing page",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "lander.yml", "config file path")
}

// loadConfig reads and validates the config file named by --config.
func loadConfig() (*site.Config, error) {
	cfg, err := site.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
