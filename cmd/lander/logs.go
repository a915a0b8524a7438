//go:build !js && !wasm

package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Its-donkey/lander/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent server log entries from log.dir",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Log.Dir == "" {
			return fmt.Errorf("log.dir is not configured")
		}
		n, _ := cmd.Flags().GetInt("lines")
		entries, err := logging.ReadRecent(filepath.Join(cfg.Log.Dir, "lander.log"), n)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, e := range entries {
			fmt.Fprintf(out, "%s %-5s %-8s %s", e.Timestamp.Format(time.RFC3339), e.Level, e.Category, e.Message)
			if e.Error != "" {
				fmt.Fprintf(out, " error=%q", e.Error)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().IntP("lines", "n", 50, "number of entries to show")
	rootCmd.AddCommand(logsCmd)
}
