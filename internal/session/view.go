// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"fmt"

	"github.com/pdiddy/extract-client/pkg/types"
)

const (
	idleHeading = "Drop your PDF here"
	idleDetail  = "or browse your files"
)

// View is everything a front end needs to draw the session.
type View struct {
	Phase types.Phase

	// Heading and Detail describe the drop area.
	Heading string
	Detail  string

	// Status is the progress, success or error line.
	Status string

	UploadVisible  bool
	StatusVisible  bool
	ConvertEnabled bool

	// Highlighted is set while a drag hovers the drop area or a
	// selection exists.
	Highlighted bool

	// Count and TotalBytes describe the current selection.
	Count      int
	TotalBytes int64
}

// initialView is the no-selection display.
func initialView() View {
	return View{
		Phase:         types.PhaseIdle,
		Heading:       idleHeading,
		Detail:        idleDetail,
		UploadVisible: true,
	}
}

// selectionView is the display for a freshly made selection.
func selectionView(files []types.File) View {
	total := types.TotalSize(files)
	heading := files[0].Name
	if len(files) > 1 {
		heading = fmt.Sprintf("%d files selected", len(files))
	}
	return View{
		Phase:          types.PhaseSelecting,
		Heading:        heading,
		Detail:         FormatMB(total) + " selected",
		UploadVisible:  true,
		ConvertEnabled: true,
		Highlighted:    true,
		Count:          len(files),
		TotalBytes:     total,
	}
}

// FormatMB renders n bytes as megabytes with two decimals ("1.50 MB").
func FormatMB(n int64) string {
	return fmt.Sprintf("%.2f MB", float64(n)/1024/1024)
}

// progressText is the status line while file i of n is in flight.
func progressText(i, n int, name string) string {
	return fmt.Sprintf("Processing file %d of %d: %s", i, n, name)
}
