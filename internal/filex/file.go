// Package filex holds file system helpers of the CLI.
package filex

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// EnsureSubDir creates dirName under the working directory if needed and
// returns its absolute path.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// PathForKey maps an object key such as "exports/u1/2025-06-01.json" to a
// file in dir. Only the last key segment is used.
func PathForKey(dir, key string) (string, error) {
	name := path.Base(strings.ReplaceAll(key, `\`, "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(dir, name), nil
}
