//go:build !js && !wasm

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Its-donkey/lander/internal/ui/components"
	"github.com/Its-donkey/lander/internal/ui/config"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Print the purchase chat link the buy buttons open",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		purchase := config.Default().Purchase
		if cfg.Purchase.BaseURL != "" {
			purchase.BaseURL = cfg.Purchase.BaseURL
		}
		if cfg.Purchase.Phone != "" {
			purchase.Phone = cfg.Purchase.Phone
		}
		if cfg.Purchase.Message != "" {
			purchase.Message = cfg.Purchase.Message
		}
		if v, _ := cmd.Flags().GetString("phone"); v != "" {
			purchase.Phone = v
		}
		if v, _ := cmd.Flags().GetString("message"); v != "" {
			purchase.Message = v
		}
		fmt.Fprintln(cmd.OutOrStdout(), components.PurchaseURL(purchase.BaseURL, purchase.Phone, purchase.Message))
		return nil
	},
}

func init() {
	linkCmd.Flags().String("phone", "", "phone number to message")
	linkCmd.Flags().String("message", "", "prefilled message")
	rootCmd.AddCommand(linkCmd)
}
