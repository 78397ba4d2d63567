package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/extract-client/internal/history"
	"github.com/pdiddy/extract-client/internal/intake"
	"github.com/pdiddy/extract-client/internal/report"
	"github.com/pdiddy/extract-client/internal/save"
	"github.com/pdiddy/extract-client/internal/service"
	"github.com/pdiddy/extract-client/internal/session"
	"github.com/pdiddy/extract-client/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files or directories...]",
	Short: "Convert PDF files to spreadsheets",
	Long: `Convert submits each selected PDF to the conversion service in order and
saves the returned workbook as <name>_extracted.xlsx in the output directory.
Directories are expanded to the files matching --pattern.

Files are processed strictly one at a time. The first failure stops the
batch: files after it are not submitted, files before it stay saved.

With --stdin, paths are read one per line from standard input and dropped
into the selection instead of being taken from the arguments.`,
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringP("format", "f", "", "output format: "+strings.Join(formatList(), ", ")+" (default auto)")
	f.StringP("output-dir", "o", "", "directory for converted files (default .)")
	f.Duration("pacing-delay", 0, "wait between consecutive files (default 500ms)")
	f.Duration("done-delay", 0, "how long the success message is shown before reset (default 2s)")
	f.Duration("error-delay", 0, "how long the error message is shown before reset (default 3s)")
	f.String("pattern", "", "file pattern for directory arguments (default *.pdf)")
	f.Bool("require-pdf", true, "reject files whose content is not a PDF")
	f.Bool("history", true, "record outcomes in the local history database")
	f.Bool("stdin", false, "read paths to drop from standard input")
	f.String("report", "", "write a YAML batch report to this path")

	bindFlag("session.format", f.Lookup("format"))
	bindFlag("session.output_dir", f.Lookup("output-dir"))
	bindFlag("session.pacing_delay", f.Lookup("pacing-delay"))
	bindFlag("session.done_reset_delay", f.Lookup("done-delay"))
	bindFlag("session.error_reset_delay", f.Lookup("error-delay"))
	bindFlag("intake.pattern", f.Lookup("pattern"))
	bindFlag("intake.require_pdf", f.Lookup("require-pdf"))
	bindFlag("history.enabled", f.Lookup("history"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	fromStdin, _ := cmd.Flags().GetBool("stdin")
	reportPath, _ := cmd.Flags().GetString("report")

	if len(args) == 0 && !fromStdin {
		return fmt.Errorf("provide one or more PDF files or directories, or use --stdin")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := service.NewClient(nil, cfg.Service)
	if err != nil {
		return err
	}

	collector := &report.Collector{}
	recorders := []session.Recorder{collector}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History)
		if err != nil {
			logger.Warn("history disabled", zap.Error(err))
		} else {
			defer store.Close()
			recorders = append(recorders, store)
		}
	}

	saver := save.NewDirSaver(cfg.Session.OutputDir)
	logger.Debug("saving artifacts", zap.String("dir", saver.Dir()))

	ctrl := session.New(client, saver, cfg.Session,
		session.WithRenderer(session.NewTextRenderer(cmd.OutOrStdout())),
		session.WithRecorder(session.MultiRecorder(recorders...)),
		session.WithLogger(logger),
	)
	d := session.NewDispatcher()
	ctrl.Bind(d)
	ctx := cmd.Context()

	paths := args
	if fromStdin {
		paths, err = intake.ReadPaths(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}
	picked, err := intake.Collect(paths, cfg.Intake)
	if err != nil {
		return err
	}
	for _, r := range picked.Rejected {
		fmt.Fprintf(os.Stderr, "skipped: %s (%s)\n", r.Path, r.Reason)
	}

	if fromStdin {
		if err := d.Dispatch(ctx, session.Event{Name: session.EventDragEnter}); err != nil {
			return err
		}
		err = d.Dispatch(ctx, session.Event{Name: session.EventDrop, Files: picked.Files})
	} else {
		err = d.Dispatch(ctx, session.Event{Name: session.EventPick, Files: picked.Files})
	}
	if err != nil {
		return err
	}

	selection := ctrl.Selection()
	if len(selection) == 0 {
		return fmt.Errorf("no files to convert")
	}

	batchErr := d.Dispatch(ctx, session.Event{Name: session.EventConvert})
	res := ctrl.LastResult()

	if reportPath != "" {
		r := report.New(res, collector.Outcomes(res.BatchID), selection)
		if err := report.Write(r, reportPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "report: %s\n", reportPath)
	}

	if batchErr != nil {
		return fmt.Errorf("%d of %d file(s) converted: %w", res.Converted, res.Total, batchErr)
	}
	return nil
}

// formatList is the help text for the format flag values.
func formatList() []string {
	fs := types.Formats()
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.String()
	}
	return out
}
