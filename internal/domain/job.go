package domain

import "time"

// JobStatus represents the status of a pipeline job. The worker owns the
// status field and all transitions; the dashboard only reads it.
// Values include JobStatusQueued, JobStatusConverting, JobStatusTransferring,
// JobStatusDone, JobStatusSkipped, and JobStatusFailed.
type JobStatus string

const (
	JobStatusQueued       JobStatus = "queued"
	JobStatusConverting   JobStatus = "converting"
	JobStatusTransferring JobStatus = "transferring"
	JobStatusDone         JobStatus = "done"
	JobStatusSkipped      JobStatus = "skipped"
	JobStatusFailed       JobStatus = "failed"
)

// Active reports whether the status counts as in-flight work.
func (s JobStatus) Active() bool {
	switch s {
	case JobStatusQueued, JobStatusConverting, JobStatusTransferring:
		return true
	}
	return false
}

// Job is one unit of pipeline work as recorded in the shared state document.
// The worker writes fields we do not model (sizes, codec info, retry counts),
// so jobs are kept as raw maps with typed accessors: every unknown field
// round-trips untouched when the document is rewritten.
type Job map[string]any

// ID returns the job identifier, or "" if absent.
func (j Job) ID() string {
	s, _ := j["id"].(string)
	return s
}

// Status returns the job status, or "" if absent.
func (j Job) Status() JobStatus {
	s, _ := j["status"].(string)
	return JobStatus(s)
}

// Elapsed returns the wall time between the started and updated stamps.
// The second return is false when either stamp is absent or unparseable.
func (j Job) Elapsed() (time.Duration, bool) {
	started, ok := j.timestamp("started")
	if !ok {
		return 0, false
	}
	updated, ok := j.timestamp("updated")
	if !ok {
		return 0, false
	}
	return updated.Sub(started), true
}

// HasTimestamps reports whether both started and updated are present and
// non-empty, without attempting to parse them.
func (j Job) HasTimestamps() bool {
	s, _ := j["started"].(string)
	u, _ := j["updated"].(string)
	return s != "" && u != ""
}

func (j Job) timestamp(key string) (time.Time, bool) {
	s, _ := j[key].(string)
	if s == "" {
		return time.Time{}, false
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// timestampLayouts covers the ISO-8601 variants the worker emits: full
// RFC 3339 and zone-less local stamps, with or without fractional seconds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses an ISO-8601 timestamp as written by the worker.
func ParseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
