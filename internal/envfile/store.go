// Package envfile reads and patches the KEY="value" configuration file shared
// with the worker. Updates are structural patches over the existing file:
// comments, blank lines, and key order survive a rewrite.
package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Store provides access to one config.env file. Reads are unsynchronized;
// writes serialize on an internal mutex and replace the file atomically, so
// the worker never observes a half-written config.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Read parses the file into a key/value map. Blank lines and # comments are
// skipped, one layer of matching quotes is stripped from values, and the last
// occurrence of a duplicate key wins. A missing or unreadable file yields an
// empty map.
func (s *Store) Read() map[string]string {
	config := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return config
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		config[strings.TrimSpace(key)] = unquote(strings.TrimSpace(val))
	}
	return config
}

// Write applies a partial update. The current file contents serve as a layout
// template: each key=value line whose key appears in updates is rewritten as
// key="value", every other line passes through unchanged, and update keys not
// matched against an existing line are appended. Write(nil) reproduces the
// file modulo trailing newline.
func (s *Store) Write(updates map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lines []string
	if data, err := os.ReadFile(s.path); err == nil {
		lines = strings.Split(string(data), "\n")
	}

	updated := make(map[string]bool, len(updates))
	out := make([]string, 0, len(lines)+len(updates))
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped != "" && !strings.HasPrefix(stripped, "#") {
			if key, _, ok := strings.Cut(stripped, "="); ok {
				key = strings.TrimSpace(key)
				if val, hit := updates[key]; hit {
					out = append(out, fmt.Sprintf("%s=%q", key, val))
					updated[key] = true
					continue
				}
			}
		}
		out = append(out, line)
	}

	// Append keys that were not already in the file, in stable order.
	missing := make([]string, 0, len(updates))
	for key := range updates {
		if !updated[key] {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	if len(missing) > 0 {
		// Drop the trailing empty split element so new lines land before the
		// final newline.
		if n := len(out); n > 0 && out[n-1] == "" {
			out = out[:n-1]
		}
		for _, key := range missing {
			out = append(out, fmt.Sprintf("%s=%q", key, updates[key]))
		}
		out = append(out, "")
	}

	return writeAtomic(s.path, []byte(strings.Join(out, "\n")))
}

func unquote(val string) string {
	if len(val) >= 2 {
		first, last := val[0], val[len(val)-1]
		if first == last && (first == '"' || first == '\'') {
			return val[1 : len(val)-1]
		}
	}
	return val
}

// writeAtomic replaces path via a temp file and rename so concurrent readers
// see either the old or the new contents, never a mix.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".env-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file for %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("chmod temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("atomic rename for %s: %w", path, err)
	}
	return nil
}
