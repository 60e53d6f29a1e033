// Package output handles writing rendered documents to disk.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrMissingDir indicates the output directory does not exist. The tool
// never creates it: writing into an unexpected location is worse than
// asking the user to make the directory.
var ErrMissingDir = errors.New("output directory not found")

// Writer writes markdown documents into a fixed directory.
type Writer struct {
	Dir string
}

// NewWriter creates a writer for the given directory.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// DefaultDir returns the default output directory, $HOME/tmp.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tmp"
	}
	return filepath.Join(home, "tmp")
}

// Write stores document as <name>.md inside the writer's directory and
// returns the full path and the number of bytes written.
func (w *Writer) Write(name, document string) (string, int, error) {
	info, err := os.Stat(w.Dir)
	if err != nil || !info.IsDir() {
		return "", 0, fmt.Errorf("%w: %s", ErrMissingDir, w.Dir)
	}

	path := filepath.Join(w.Dir, name+".md")
	data := []byte(document)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", 0, fmt.Errorf("write document: %w", err)
	}
	return path, len(data), nil
}
