// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File is one entry of a selection: a name, a byte size, and a payload
// that is read either from disk or from memory.
type File struct {
	// Name is the display and upload file name (base name only).
	Name string `json:"name" yaml:"name"`

	// Size is the payload length in bytes.
	Size int64 `json:"size" yaml:"size"`

	// Path is the local path the payload is read from. Empty for
	// in-memory files.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	data []byte
}

// NewMemFile returns a File backed by data.
func NewMemFile(name string, data []byte) File {
	return File{Name: name, Size: int64(len(data)), data: data}
}

// FileFromPath stats path and returns a File that reads from it.
func FileFromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}
	return File{Name: filepath.Base(path), Size: info.Size(), Path: path}, nil
}

// Open returns a reader over the payload. The caller closes it.
func (f File) Open() (io.ReadCloser, error) {
	if f.Path == "" {
		return io.NopCloser(bytes.NewReader(f.data)), nil
	}
	r, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Path, err)
	}
	return r, nil
}

// TotalSize returns the sum of the sizes of files.
func TotalSize(files []File) int64 {
	var n int64
	for _, f := range files {
		n += f.Size
	}
	return n
}
