// Package logtail returns the last lines of worker log files.
package logtail

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Tailer reads bounded tails of files under one log directory.
type Tailer struct {
	dir     string
	lines   int
	timeout time.Duration
}

// NewTailer creates a tailer for the given directory.
func NewTailer(dir string, lines int, timeout time.Duration) *Tailer {
	if lines <= 0 {
		lines = 50
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Tailer{dir: dir, lines: lines, timeout: timeout}
}

// Tail returns the last lines of the named file. The name must resolve to a
// file inside the log directory; anything else is an error.
func (t *Tailer) Tail(ctx context.Context, name string) (string, error) {
	path := filepath.Join(t.dir, name)
	rel, err := filepath.Rel(t.dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("log name escapes log directory: %q", name)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "tail", "-n", strconv.Itoa(t.lines), path).Output()
	if err != nil {
		return "", fmt.Errorf("tail %s: %w", path, err)
	}
	return string(out), nil
}
