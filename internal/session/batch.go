// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/extract-client/pkg/types"
)

// Converter submits one file to the conversion service and returns the
// converted payload.
type Converter interface {
	Convert(ctx context.Context, f types.File, format types.Format) ([]byte, error)
}

// Saver triggers the save of one artifact and returns where it went.
type Saver interface {
	Save(ctx context.Context, a types.Artifact) (string, error)
}

// Sleeper waits for d or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration)

// Sleep is the default Sleeper.
func Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// FileError is the failure of one file of a batch. It names the file and
// wraps the conversion, transport or save error.
type FileError struct {
	// Index is the 1-based position of the file in the batch.
	Index int
	Name  string
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Batch is the input of one sequential run.
type Batch struct {
	ID          string
	Files       []types.File
	Format      types.Format
	PacingDelay time.Duration
}

// Hooks observe a running batch. Nil fields are skipped.
type Hooks struct {
	// Progress is called before file i (1-based) of n is submitted.
	Progress func(i, n int, f types.File)

	// Outcome is called once per attempted file.
	Outcome func(o types.Outcome)

	// Sleep paces consecutive saves; defaults to Sleep.
	Sleep Sleeper
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	BatchID    string       `json:"batch_id" yaml:"batch_id"`
	Format     types.Format `json:"format" yaml:"format"`
	Total      int          `json:"total" yaml:"total"`
	Converted  int          `json:"converted" yaml:"converted"`
	Saved      []string     `json:"saved" yaml:"saved"`
	Failed     string       `json:"failed,omitempty" yaml:"failed,omitempty"`
	Error      string       `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time    `json:"finished_at" yaml:"finished_at"`

	err *FileError
}

// HasFailures reports whether the batch was aborted by a failing file.
func (r BatchResult) HasFailures() bool {
	return r.err != nil
}

// Err returns the *FileError that aborted the batch, or nil.
func (r BatchResult) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// Message returns the text shown once the batch has ended.
func (r BatchResult) Message() string {
	if r.err != nil {
		return "Error: " + r.err.Error()
	}
	return fmt.Sprintf("Successfully converted %d file(s)!", r.Converted)
}

// RunBatch converts b.Files strictly in order, one request at a time. Each
// successful payload is saved under its derived artifact name before the
// next file is submitted, with b.PacingDelay between consecutive files. The
// first failure of a conversion, the transport or a save aborts the run;
// the files after it are not submitted.
func RunBatch(ctx context.Context, conv Converter, saver Saver, b Batch, hooks Hooks) BatchResult {
	sleep := hooks.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	res := BatchResult{
		BatchID:   b.ID,
		Format:    b.Format,
		Total:     len(b.Files),
		StartedAt: time.Now().UTC(),
	}
	n := len(b.Files)

	for i, f := range b.Files {
		if hooks.Progress != nil {
			hooks.Progress(i+1, n, f)
		}

		outcome := types.Outcome{
			BatchID: b.ID,
			File:    f.Name,
			Size:    f.Size,
			Format:  b.Format,
		}

		path, err := convertOne(ctx, conv, saver, f, b.Format)
		outcome.At = time.Now().UTC()
		if err != nil {
			outcome.Status = types.OutcomeFailed
			outcome.Message = err.Error()
			if hooks.Outcome != nil {
				hooks.Outcome(outcome)
			}
			res.err = &FileError{Index: i + 1, Name: f.Name, Err: err}
			res.Failed = f.Name
			res.Error = err.Error()
			break
		}

		outcome.Status = types.OutcomeConverted
		outcome.ArtifactPath = path
		if hooks.Outcome != nil {
			hooks.Outcome(outcome)
		}
		res.Converted++
		res.Saved = append(res.Saved, path)

		if i < n-1 {
			sleep(ctx, b.PacingDelay)
		}
	}

	res.FinishedAt = time.Now().UTC()
	return res
}

func convertOne(ctx context.Context, conv Converter, saver Saver, f types.File, format types.Format) (string, error) {
	data, err := conv.Convert(ctx, f, format)
	if err != nil {
		return "", err
	}
	path, err := saver.Save(ctx, types.Artifact{
		Name:   types.ArtifactName(f.Name, format),
		Source: f.Name,
		Data:   data,
	})
	if err != nil {
		return "", fmt.Errorf("saving: %w", err)
	}
	return path, nil
}
