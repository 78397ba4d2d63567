// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intake is the file picker: it turns command-line or dropped
// paths into an ordered selection of files.
package intake

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pdiddy/extract-client/pkg/types"
)

const (
	// DefaultPattern selects directory entries when IntakeConfig.Pattern is empty.
	DefaultPattern = "*.pdf"

	pdfMIME = "application/pdf"
)

// Rejection is a path the picker refused, with the reason.
type Rejection struct {
	Path   string
	Reason string
}

// Result is the outcome of collecting paths.
type Result struct {
	Files    []types.File
	Rejected []Rejection
}

// Collect resolves paths into files. Regular files are taken as given;
// directories are expanded, non-recursively and in lexical order, to the
// entries matching cfg.Pattern. Missing or unreadable paths and, when
// cfg.RequirePDF is set, files whose content is not a PDF are rejected
// rather than failing the whole pick. A path seen twice is kept once.
func Collect(paths []string, cfg types.IntakeConfig) (Result, error) {
	pattern := cfg.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return Result{}, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var res Result
	seen := make(map[string]bool)
	add := func(path string) {
		clean := filepath.Clean(path)
		if seen[clean] {
			return
		}
		seen[clean] = true

		if cfg.RequirePDF {
			if reason := notPDF(clean); reason != "" {
				res.Rejected = append(res.Rejected, Rejection{Path: path, Reason: reason})
				return
			}
		}
		f, err := types.FileFromPath(clean)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{Path: path, Reason: err.Error()})
			return
		}
		res.Files = append(res.Files, f)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{Path: p, Reason: err.Error()})
			continue
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{Path: p, Reason: err.Error()})
			continue
		}
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			if ok, _ := filepath.Match(pattern, e.Name()); ok {
				add(filepath.Join(p, e.Name()))
			}
		}
	}
	return res, nil
}

// notPDF sniffs path and returns a rejection reason, or "" for a PDF.
func notPDF(path string) string {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return err.Error()
	}
	if !mt.Is(pdfMIME) {
		return fmt.Sprintf("not a PDF (detected %s)", mt.String())
	}
	return ""
}

// ReadPaths reads one path per line from r, skipping blank lines and
// lines starting with '#'.
func ReadPaths(r io.Reader) ([]string, error) {
	var paths []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading paths: %w", err)
	}
	return paths, nil
}
