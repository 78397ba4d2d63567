// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session implements the upload session: selection intake by pick
// or drop, the sequential convert-and-save batch, and the timed return to
// idle afterward.
//
// A Controller owns its selection and phase for the lifetime of one
// session. Its state is guarded by a mutex, so methods may be called from
// any goroutine, including from inside a running batch. The batch itself
// runs on the goroutine that calls Convert and at most one runs at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/extract-client/pkg/types"
)

// Renderer draws a View. It is called after every change, outside the
// controller lock.
type Renderer interface {
	Render(v View)
}

// Recorder persists per-file outcomes. Errors are logged and otherwise
// ignored.
type Recorder interface {
	Record(ctx context.Context, o types.Outcome) error
}

// MultiRecorder records to every r in order and joins their errors.
func MultiRecorder(rs ...Recorder) Recorder {
	return multiRecorder(rs)
}

type multiRecorder []Recorder

func (m multiRecorder) Record(ctx context.Context, o types.Outcome) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Option configures a Controller.
type Option func(*Controller)

// WithRenderer sets the view sink.
func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

// WithRecorder sets the outcome sink.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithSleeper replaces the timer used for pacing and reset delays.
func WithSleeper(s Sleeper) Option {
	return func(c *Controller) { c.sleep = s }
}

// Controller is one upload session.
type Controller struct {
	conv     Converter
	saver    Saver
	cfg      types.SessionConfig
	renderer Renderer
	recorder Recorder
	log      *zap.Logger
	sleep    Sleeper

	mu        sync.Mutex
	phase     types.Phase
	selection []types.File
	format    types.Format
	dragging  bool
	view      View
	last      BatchResult

	// batch is the ID of the batch running or showing its result. It is
	// cleared by any reset.
	batch string
}

// New returns an idle Controller that converts with conv and saves with
// saver. cfg.Format is the initially selected format; an invalid or empty
// one falls back to auto.
func New(conv Converter, saver Saver, cfg types.SessionConfig, opts ...Option) *Controller {
	c := &Controller{
		conv:  conv,
		saver: saver,
		cfg:   cfg,
		log:   zap.NewNop(),
		sleep: Sleep,
		phase: types.PhaseIdle,
		view:  initialView(),
	}
	c.format = cfg.Format
	if !c.format.Valid() {
		c.format = types.FormatAuto
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bind registers the controller's handlers on d. It is called once; the
// handlers stay valid across resets.
func (c *Controller) Bind(d *Dispatcher) {
	d.On(EventPick, func(_ context.Context, ev Event) error {
		c.Pick(ev.Files)
		return nil
	})
	d.On(EventDrop, func(_ context.Context, ev Event) error {
		c.Drop(ev.Files)
		return nil
	})
	d.On(EventDragEnter, func(context.Context, Event) error {
		c.DragEnter()
		return nil
	})
	d.On(EventDragLeave, func(context.Context, Event) error {
		c.DragLeave()
		return nil
	})
	d.On(EventConvert, func(ctx context.Context, _ Event) error {
		return c.Convert(ctx).Err()
	})
	d.On(EventReset, func(context.Context, Event) error {
		c.Reset()
		return nil
	})
}

// Phase returns the current phase.
func (c *Controller) Phase() types.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// View returns the current display.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Selection returns a copy of the current selection.
func (c *Controller) Selection() []types.File {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.File(nil), c.selection...)
}

// LastResult returns the result of the most recent batch.
func (c *Controller) LastResult() BatchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Format returns the format the next batch will use.
func (c *Controller) Format() types.Format {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.format
}

// SetFormat selects the output format for the next batch. The running
// batch, if any, keeps the format it started with.
func (c *Controller) SetFormat(f types.Format) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownFormat, f)
	}
	c.mu.Lock()
	c.format = f
	c.mu.Unlock()
	return nil
}

// Pick replaces the selection with files. An empty set changes nothing.
// Picks are ignored while a batch is running or showing its result.
func (c *Controller) Pick(files []types.File) {
	if len(files) == 0 {
		return
	}
	c.update(func() bool {
		if !c.phase.CanTransition(types.PhaseSelecting) {
			c.log.Debug("selection ignored", zap.Stringer("phase", c.phase))
			return false
		}
		c.selection = append([]types.File(nil), files...)
		c.phase = types.PhaseSelecting
		c.dragging = false
		c.view = selectionView(c.selection)
		return true
	})
}

// Drop is a pick that ends a drag.
func (c *Controller) Drop(files []types.File) {
	c.update(func() bool {
		if !c.dragging {
			return false
		}
		c.dragging = false
		c.view.Highlighted = len(c.selection) > 0
		return true
	})
	c.Pick(files)
}

// DragEnter highlights the drop area. The selection is untouched.
func (c *Controller) DragEnter() {
	c.update(func() bool {
		if !c.phase.CanTransition(types.PhaseSelecting) {
			return false
		}
		c.dragging = true
		c.view.Highlighted = true
		return true
	})
}

// DragLeave drops the highlight unless a selection exists.
func (c *Controller) DragLeave() {
	c.update(func() bool {
		if !c.dragging {
			return false
		}
		c.dragging = false
		c.view.Highlighted = len(c.selection) > 0
		return true
	})
}

// Convert runs the batch for the current selection and format, shows the
// result for the configured delay, and resets the session. It returns once
// the session is idle again. Without a selection, or while another batch is
// running, it does nothing and returns a zero BatchResult.
func (c *Controller) Convert(ctx context.Context) BatchResult {
	c.mu.Lock()
	if !c.phase.CanTransition(types.PhaseProcessing) || len(c.selection) == 0 {
		c.mu.Unlock()
		return BatchResult{}
	}
	b := Batch{
		ID:          uuid.NewString(),
		Files:       append([]types.File(nil), c.selection...),
		Format:      c.format,
		PacingDelay: c.cfg.PacingDelay,
	}
	c.phase = types.PhaseProcessing
	c.batch = b.ID
	c.view = View{
		Phase:         types.PhaseProcessing,
		Status:        progressText(1, len(b.Files), b.Files[0].Name),
		StatusVisible: true,
		Count:         c.view.Count,
		TotalBytes:    c.view.TotalBytes,
	}
	v := c.view
	c.mu.Unlock()
	c.render(v)

	c.log.Info("batch started",
		zap.String("batch", b.ID),
		zap.Int("files", len(b.Files)),
		zap.Stringer("format", b.Format))

	res := RunBatch(ctx, c.conv, c.saver, b, Hooks{
		Progress: func(i, n int, f types.File) {
			c.update(func() bool {
				c.view.Status = progressText(i, n, f.Name)
				return true
			})
		},
		Outcome: func(o types.Outcome) { c.record(ctx, o) },
		Sleep:   c.sleep,
	})

	next, delay := types.PhaseDone, c.cfg.DoneResetDelay
	if res.HasFailures() {
		next, delay = types.PhaseError, c.cfg.ErrorResetDelay
		c.log.Warn("batch aborted",
			zap.String("batch", b.ID),
			zap.Int("converted", res.Converted),
			zap.Error(res.Err()))
	} else {
		c.log.Info("batch finished",
			zap.String("batch", b.ID),
			zap.Int("converted", res.Converted))
	}

	c.update(func() bool {
		c.last = res
		if c.batch != b.ID || !c.phase.CanTransition(next) {
			return false
		}
		c.phase = next
		c.view.Phase = next
		c.view.Status = res.Message()
		return true
	})

	c.sleep(ctx, delay)
	c.update(func() bool {
		// An explicit reset during the delay already ended this batch and
		// the session may hold a new selection.
		if c.batch != b.ID || !c.phase.IsTerminal() {
			return false
		}
		c.resetLocked()
		return true
	})
	return res
}

// Reset clears the selection and returns to the initial idle display.
// Calling it while idle only re-renders the idle display. A running batch
// cannot be reset; the call is ignored until the batch ends.
func (c *Controller) Reset() {
	c.update(func() bool {
		if !c.phase.CanTransition(types.PhaseIdle) {
			c.log.Debug("reset ignored", zap.Stringer("phase", c.phase))
			return false
		}
		c.resetLocked()
		return true
	})
}

func (c *Controller) resetLocked() {
	c.selection = nil
	c.phase = types.PhaseIdle
	c.dragging = false
	c.batch = ""
	c.view = initialView()
}

// update runs fn under the lock and renders the resulting view if fn
// reports a change.
func (c *Controller) update(fn func() bool) {
	c.mu.Lock()
	changed := fn()
	v := c.view
	c.mu.Unlock()
	if changed {
		c.render(v)
	}
}

func (c *Controller) render(v View) {
	if c.renderer != nil {
		c.renderer.Render(v)
	}
}

func (c *Controller) record(ctx context.Context, o types.Outcome) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(ctx, o); err != nil {
		c.log.Warn("recording outcome failed", zap.String("file", o.File), zap.Error(err))
	}
}
