// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/extract-client/internal/service"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the conversion service is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := service.NewClient(nil, serviceConfig())
		if err != nil {
			return err
		}
		hs, err := client.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("conversion service unavailable: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", hs.Status, hs.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
