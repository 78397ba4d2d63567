// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes batch summaries as YAML.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/extract-client/internal/session"
	"github.com/pdiddy/extract-client/pkg/types"
)

// Report is the YAML document written for one batch.
type Report struct {
	session.BatchResult `yaml:",inline"`

	// Files lists what happened to each attempted file, in order.
	Files []types.Outcome `yaml:"files"`

	// Skipped lists the files never submitted because the batch aborted.
	Skipped []string `yaml:"skipped,omitempty"`
}

// New builds a report from a batch result, its outcomes and the selection
// it ran over.
func New(res session.BatchResult, outcomes []types.Outcome, selection []types.File) Report {
	r := Report{BatchResult: res, Files: outcomes}
	for _, f := range selection[min(len(outcomes), len(selection)):] {
		r.Skipped = append(r.Skipped, f.Name)
	}
	return r
}

// Write marshals r to path, creating parent directories.
func Write(r Report, path string) error {
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Read loads a report written by Write.
func Read(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, err
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("parsing report: %w", err)
	}
	return r, nil
}

// Summary prints r as a short human-readable listing: one header line
// and one line per file, skipped files last.
func (r Report) Summary(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "batch %s (%s): %d of %d converted\n",
		r.BatchID, r.Format, r.Converted, r.Total); err != nil {
		return err
	}
	for _, o := range r.Files {
		detail := o.ArtifactPath
		if o.Status == types.OutcomeFailed {
			detail = o.Message
		}
		if _, err := fmt.Fprintf(w, "  %-9s %s  %s\n", o.Status, o.File, detail); err != nil {
			return err
		}
	}
	for _, name := range r.Skipped {
		if _, err := fmt.Fprintf(w, "  %-9s %s\n", "skipped", name); err != nil {
			return err
		}
	}
	return nil
}

// Collector gathers the outcomes of a running batch. It implements
// session.Recorder.
type Collector struct {
	mu       sync.Mutex
	outcomes []types.Outcome
}

// Record appends o.
func (c *Collector) Record(_ context.Context, o types.Outcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, o)
	return nil
}

// Outcomes returns the outcomes recorded for batchID, in order.
func (c *Collector) Outcomes(batchID string) []types.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []types.Outcome
	for _, o := range c.outcomes {
		if o.BatchID == batchID {
			out = append(out, o)
		}
	}
	return out
}
