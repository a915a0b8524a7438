//go:build !js && !wasm

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Its-donkey/lander/internal/site"
)

var checkCmd = &cobra.Command{
	Use:   "check [page.html]",
	Short: "Check a page against the element contract the client expects",
	Long: `Without an argument, check renders the configured content and checks the result.
With a path, it checks that HTML file instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := pageToCheck(args)
		if err != nil {
			return err
		}
		rep, err := site.CheckContract(page)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(rep); err != nil {
				return err
			}
		} else {
			fmt.Fprint(out, rep.String())
		}
		if !rep.OK() {
			return fmt.Errorf("%d contract checks failed", len(rep.Failed()))
		}
		return nil
	},
}

func pageToCheck(args []string) (io.Reader, error) {
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("open page: %w", err)
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("read page: %w", err)
		}
		return bytes.NewReader(data), nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	content, err := site.LoadContent(cfg.ContentFile)
	if err != nil {
		return nil, err
	}
	renderer, err := site.NewRenderer()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, content, time.Now().Year(), cfg.Log.Level, cfg.Purchase); err != nil {
		return nil, err
	}
	return &buf, nil
}

func init() {
	checkCmd.Flags().Bool("json", false, "print the report as JSON")
	rootCmd.AddCommand(checkCmd)
}
