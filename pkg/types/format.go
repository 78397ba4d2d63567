// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the output format tag submitted with a conversion request.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatTable Format = "table"
	FormatText  Format = "text"
)

// ErrUnknownFormat is returned by ParseFormat for tags outside the
// enumerated set.
var ErrUnknownFormat = errors.New("unknown output format")

// artifactSuffix is inserted between the source base name and the format
// extension.
const artifactSuffix = "_extracted"

// formatExtensions maps each format to the extension of the file the
// service returns for it. The service answers every format with a workbook.
var formatExtensions = map[Format]string{
	FormatAuto:  ".xlsx",
	FormatTable: ".xlsx",
	FormatText:  ".xlsx",
}

// Formats returns the enumerated output formats in display order.
func Formats() []Format {
	return []Format{FormatAuto, FormatTable, FormatText}
}

// ParseFormat returns the Format for s. Matching ignores case and
// surrounding whitespace.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formatExtensions[f]; !ok {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, s, joinFormats())
	}
	return f, nil
}

// Valid reports whether f is one of the enumerated formats.
func (f Format) Valid() bool {
	_, ok := formatExtensions[f]
	return ok
}

// Extension returns the artifact file extension for f, including the dot.
func (f Format) Extension() string {
	if ext, ok := formatExtensions[f]; ok {
		return ext
	}
	return formatExtensions[FormatAuto]
}

func (f Format) String() string { return string(f) }

// ArtifactName derives the saved file name for a converted source file:
// the source extension is replaced by "_extracted" plus the format extension.
// "report.pdf" with FormatTable becomes "report_extracted.xlsx".
func ArtifactName(source string, f Format) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + artifactSuffix + f.Extension()
}

func joinFormats() string {
	fs := Formats()
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}
