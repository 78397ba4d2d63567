// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/extract-client/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <file.yaml>",
	Short: "Show a batch report written by convert --report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := report.Read(args[0])
		if err != nil {
			return err
		}
		return r.Summary(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
