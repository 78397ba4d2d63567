// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"fmt"
	"io"
	"sync"
)

// TextRenderer prints the session to a terminal: the drop area when the
// selection changes and every new status line.
type TextRenderer struct {
	w io.Writer

	mu      sync.Mutex
	heading string
	detail  string
	status  string
}

// NewTextRenderer returns a TextRenderer writing to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Render prints the parts of v that changed since the previous call.
func (r *TextRenderer) Render(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v.UploadVisible && v.Count > 0 && (v.Heading != r.heading || v.Detail != r.detail) {
		fmt.Fprintf(r.w, "selected: %s (%s)\n", v.Heading, v.Detail)
	}
	if v.StatusVisible && v.Status != "" && v.Status != r.status {
		fmt.Fprintln(r.w, v.Status)
	}
	r.heading, r.detail = v.Heading, v.Detail
	r.status = v.Status
}
