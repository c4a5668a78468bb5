// Package state reads and rewrites the JSON state document maintained by the
// worker. The document is externally owned: it is re-read on every request,
// absence or corruption degrades to an empty default, and the only mutation
// the dashboard performs is flipping the pause flag.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mediamirror/dashboard/internal/domain"
)

// Store provides access to one state.json file.
type Store struct {
	path string
}

// NewStore creates a store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Read returns the current document. The worker may be mid-write with no
// coordination, so a missing or unparseable file yields the default empty
// document rather than an error.
func (s *Store) Read() domain.State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.NewState()
	}
	var st domain.State
	if err := json.Unmarshal(data, &st); err != nil {
		return domain.NewState()
	}
	return st
}

// SetPaused flips runner.paused via a whole-document read-modify-write.
// The replace is atomic (temp file + rename) so concurrent readers never see
// a torn document; a concurrent worker write can still be lost, which is the
// accepted last-writer-wins contract for this rare operator action.
func (s *Store) SetPaused(paused bool) error {
	st := s.Read()
	st.Runner.SetPaused(paused)

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".state-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", s.path, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file for %s: %w", s.path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("chmod temp file for %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file for %s: %w", s.path, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		cleanup()
		return fmt.Errorf("atomic rename for %s: %w", s.path, err)
	}
	return nil
}
