// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package save writes converted artifacts to the local filesystem.
package save

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/extract-client/pkg/types"
)

// DirSaver saves artifacts into a single output directory.
type DirSaver struct {
	dir string
}

// NewDirSaver returns a DirSaver writing into dir. An empty dir means the
// current directory. The directory is created on the first save.
func NewDirSaver(dir string) *DirSaver {
	if dir == "" {
		dir = "."
	}
	return &DirSaver{dir: dir}
}

// Dir returns the output directory.
func (s *DirSaver) Dir() string { return s.dir }

// Save writes a under its Name using a temporary file that is renamed into
// place on success, so a partial artifact is never left under the final
// name. An existing file with the same name is replaced. It returns the
// final path.
func (s *DirSaver) Save(_ context.Context, a types.Artifact) (string, error) {
	name := filepath.Base(a.Name)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("invalid artifact name %q", a.Name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", s.dir, err)
	}
	destPath := filepath.Join(s.dir, name)

	tmpFile, err := os.CreateTemp(s.dir, ".save-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(a.Data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing %s: %w", name, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return destPath, nil
}
