// Package staticfile implements the static-file responder: given a
// request target and a root directory, it returns the raw bytes of
// the resolved file, substituting index.html for directories and
// refusing to serve anything outside the root.
package staticfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound means the resolved path does not exist, or escapes the
// configured root (for which we also report not-found, to avoid
// confirming the existence of files outside the root).
var ErrNotFound = errors.New("staticfile: not found")

// Get returns the contents of <root>/<target> (leading '/' stripped),
// substituting <dir>/index.html when the resolved path is a
// directory. The result is required to resolve inside root after
// canonicalization; otherwise ErrNotFound is returned. Any other I/O
// failure is returned as-is (the caller maps it to a 500).
func Get(root, target string) ([]byte, error) {
	trimmed := target
	for len(trimmed) > 0 && trimmed[0] == '/' {
		trimmed = trimmed[1:]
	}

	joined := filepath.Join(root, trimmed)

	info, err := os.Stat(joined)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if info.IsDir() {
		joined = filepath.Join(joined, "index.html")
	}

	canonicalRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, err
	}
	canonicalPath, err := filepath.EvalSymlinks(joined)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !isWithin(canonicalRoot, canonicalPath) {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(canonicalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
