// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials from a directory of plain-text files.
// The file name is the key and the trimmed contents are the value.
//
// Known keys: convert-api-token.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ConvertAPIToken is the bearer token sent to the conversion service.
const ConvertAPIToken = "convert-api-token"

// Lookup returns the trimmed contents of dir/key, or "" if it does not
// exist.
func Lookup(dir, key string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading secret %s: %w", key, err)
	}
	return strings.TrimSpace(string(data)), nil
}
