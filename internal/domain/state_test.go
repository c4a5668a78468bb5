package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestJobAccessors(t *testing.T) {
	job := Job{
		"id":      "movie-0042",
		"status":  "converting",
		"started": "2026-08-01T10:00:00",
		"updated": "2026-08-01T10:05:00",
		"codec":   "hevc",
	}

	if job.ID() != "movie-0042" {
		t.Errorf("expected id movie-0042, got %q", job.ID())
	}
	if job.Status() != JobStatusConverting {
		t.Errorf("expected converting, got %q", job.Status())
	}
	if !job.Status().Active() {
		t.Error("converting should count as active")
	}
	elapsed, ok := job.Elapsed()
	if !ok {
		t.Fatal("expected elapsed to parse")
	}
	if elapsed != 5*time.Minute {
		t.Errorf("expected 5m elapsed, got %v", elapsed)
	}
}

func TestJobElapsedMissingOrBroken(t *testing.T) {
	tests := []struct {
		name string
		job  Job
	}{
		{"no timestamps", Job{"id": "a", "status": "done"}},
		{"started only", Job{"started": "2026-08-01T10:00:00"}},
		{"garbage updated", Job{"started": "2026-08-01T10:00:00", "updated": "not-a-time"}},
		{"non-string stamps", Job{"started": 12345, "updated": 67890}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := tt.job.Elapsed(); ok {
				t.Error("expected elapsed to fail")
			}
		})
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	tests := []string{
		"2026-08-01T10:00:00Z",
		"2026-08-01T10:00:00+02:00",
		"2026-08-01T10:00:00",
		"2026-08-01T10:00:00.123456",
	}
	for _, s := range tests {
		if _, err := ParseTimestamp(s); err != nil {
			t.Errorf("ParseTimestamp(%q): %v", s, err)
		}
	}
	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Error("expected error for unparseable stamp")
	}
}

func TestStateUnknownFieldsRoundTrip(t *testing.T) {
	doc := []byte(`{
		"jobs": [{"id": "a", "status": "done", "size_mb": 1234}],
		"stats": {"session_converted": 3},
		"runner": {"status": "running", "paused": false, "host": "nas-01"},
		"inventory": {"source_total": 10, "dest_done": 2, "scanned_at": "2026-08-01T00:00:00"},
		"schema_version": 2
	}`)

	var st State
	if err := json.Unmarshal(doc, &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if st.Inventory.SourceTotal != 10 || st.Inventory.DestDone != 2 {
		t.Errorf("inventory projection wrong: %+v", st.Inventory)
	}
	if st.Runner.Status() != "running" || st.Runner.Paused() {
		t.Errorf("runner projection wrong: %v", st.Runner)
	}

	st.Runner.SetPaused(true)
	out, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var round map[string]any
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}

	// Unmodeled fields survive at every level.
	if round["schema_version"] != float64(2) {
		t.Errorf("top-level extra field lost: %v", round["schema_version"])
	}
	inv, _ := round["inventory"].(map[string]any)
	if inv["scanned_at"] != "2026-08-01T00:00:00" {
		t.Errorf("inventory extra field lost: %v", inv)
	}
	jobs, _ := round["jobs"].([]any)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	job, _ := jobs[0].(map[string]any)
	if job["size_mb"] != float64(1234) {
		t.Errorf("job extra field lost: %v", job)
	}
	runner, _ := round["runner"].(map[string]any)
	if runner["host"] != "nas-01" {
		t.Errorf("runner extra field lost: %v", runner)
	}
	if runner["paused"] != true {
		t.Errorf("paused flag not set: %v", runner)
	}
}

func TestNewStateDefaults(t *testing.T) {
	st := NewState()
	if len(st.Jobs) != 0 || len(st.Stats) != 0 {
		t.Errorf("expected empty jobs and stats, got %+v", st)
	}
	if st.Runner.Status() != "unknown" || st.Runner.Paused() {
		t.Errorf("expected unknown/unpaused runner, got %v", st.Runner)
	}
}
