// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pdiddy/extract-client/pkg/types"
)

// EventName identifies a user interaction.
type EventName string

const (
	EventPick      EventName = "pick"
	EventDrop      EventName = "drop"
	EventDragEnter EventName = "dragenter"
	EventDragLeave EventName = "dragleave"
	EventConvert   EventName = "convert"
	EventReset     EventName = "reset"
)

// ErrNoHandler is returned when an event has no registered handler.
var ErrNoHandler = errors.New("no handler for event")

// Event is one interaction. Files is set for pick and drop.
type Event struct {
	Name  EventName
	Files []types.File
}

// Handler reacts to an event.
type Handler func(ctx context.Context, ev Event) error

// Dispatcher routes events to handlers registered once at startup.
// Handlers run on the dispatching goroutine, in registration order.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[EventName][]Handler
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventName][]Handler)}
}

// On registers h for name.
func (d *Dispatcher) On(name EventName, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

// Dispatch runs every handler registered for ev.Name and joins their errors.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	d.mu.RLock()
	hs := d.handlers[ev.Name]
	d.mu.RUnlock()

	if len(hs) == 0 {
		return fmt.Errorf("%w: %s", ErrNoHandler, ev.Name)
	}
	var errs []error
	for _, h := range hs {
		if err := h(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
