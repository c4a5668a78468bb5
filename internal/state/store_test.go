package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T, contents string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	if contents != "" {
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write state: %v", err)
		}
	}
	return NewStore(path)
}

func TestReadMissingFile(t *testing.T) {
	st := tempStore(t, "").Read()
	if len(st.Jobs) != 0 {
		t.Errorf("expected no jobs, got %d", len(st.Jobs))
	}
	if st.Runner.Status() != "unknown" || st.Runner.Paused() {
		t.Errorf("expected default runner, got %v", st.Runner)
	}
}

func TestReadCorruptFile(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"truncated json", `{"jobs": [{"id": "a", "st`},
		{"not json at all", "totally not json\n"},
		{"wrong shape", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := tempStore(t, tt.contents).Read()
			if len(st.Jobs) != 0 || st.Runner.Status() != "unknown" {
				t.Errorf("expected default state, got %+v", st)
			}
		})
	}
}

func TestSetPausedRoundTrip(t *testing.T) {
	store := tempStore(t, `{
		"jobs": [{"id": "a", "status": "done", "size_mb": 99}],
		"stats": {"converted": 1},
		"runner": {"status": "running", "paused": false},
		"inventory": {"source_total": 5, "dest_done": 1}
	}`)

	if err := store.SetPaused(true); err != nil {
		t.Fatalf("SetPaused: %v", err)
	}

	st := store.Read()
	if !st.Runner.Paused() {
		t.Error("expected paused=true after SetPaused")
	}
	if st.Runner.Status() != "running" {
		t.Errorf("runner status lost: %q", st.Runner.Status())
	}
	if len(st.Jobs) != 1 || st.Jobs[0]["size_mb"] != float64(99) {
		t.Errorf("jobs not preserved: %v", st.Jobs)
	}
	if st.Inventory.SourceTotal != 5 {
		t.Errorf("inventory not preserved: %+v", st.Inventory)
	}

	// Idempotent: pausing again leaves the document unchanged.
	before, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if err := store.SetPaused(true); err != nil {
		t.Fatalf("second SetPaused: %v", err)
	}
	after, err := os.ReadFile(store.path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var a, b map[string]any
	if err := json.Unmarshal(before, &a); err != nil {
		t.Fatalf("unmarshal before: %v", err)
	}
	if err := json.Unmarshal(after, &b); err != nil {
		t.Fatalf("unmarshal after: %v", err)
	}
	if len(a) != len(b) {
		t.Errorf("document shape changed on idempotent pause: %v vs %v", a, b)
	}
}

func TestSetPausedCreatesDocumentWhenMissing(t *testing.T) {
	store := tempStore(t, "")
	if err := store.SetPaused(true); err != nil {
		t.Fatalf("SetPaused: %v", err)
	}
	st := store.Read()
	if !st.Runner.Paused() {
		t.Error("expected paused=true in freshly created document")
	}
}
