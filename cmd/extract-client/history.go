// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/extract-client/internal/history"
	"github.com/pdiddy/extract-client/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversions",
	Long: `History lists the files recorded by previous convert runs, newest first,
with their outcome and where the artifact was saved, followed by the
all-time count of converted and failed files.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of rows (default history.max_results)")
	historyCmd.Flags().Bool("failed", false, "show failed files only")
	historyCmd.Flags().String("batch", "", "show one batch only")
	historyCmd.Flags().Bool("json", false, "output rows as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	failed, _ := cmd.Flags().GetBool("failed")
	batch, _ := cmd.Flags().GetString("batch")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := history.Open(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	filter := history.Filter{BatchID: batch, Limit: limit}
	if failed {
		filter.Status = types.OutcomeFailed
	}
	rows, err := store.Recent(cmd.Context(), filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "no conversions recorded")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tFILE\tFORMAT\tSTATUS\tDETAIL")
	for _, o := range rows {
		detail := o.ArtifactPath
		if o.Status == types.OutcomeFailed {
			detail = o.Message
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			o.At.Local().Format(time.DateTime), o.File, o.Format, o.Status, detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	counts, err := store.Counts(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nall time: %d converted, %d failed\n",
		counts[types.OutcomeConverted], counts[types.OutcomeFailed])
	return nil
}
