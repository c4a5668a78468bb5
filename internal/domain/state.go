package domain

import "encoding/json"

// Runner is the worker's self-reported runtime state. The worker writes the
// status field; the dashboard toggles paused. Kept as a raw map so fields the
// worker adds survive a pause/resume rewrite.
type Runner map[string]any

// NewRunner returns the default runner state used when the worker has not
// written one yet.
func NewRunner() Runner {
	return Runner{"status": "unknown", "paused": false}
}

// Status returns the worker-reported status, or "unknown" if absent.
func (r Runner) Status() string {
	if s, ok := r["status"].(string); ok && s != "" {
		return s
	}
	return "unknown"
}

// Paused reports whether the pause flag is set.
func (r Runner) Paused() bool {
	p, _ := r["paused"].(bool)
	return p
}

// SetPaused sets the pause flag in place.
func (r Runner) SetPaused(paused bool) {
	r["paused"] = paused
}

// Inventory is the worker's periodic full-scan summary, used as the ETA
// baseline. Read-only to the dashboard.
type Inventory struct {
	SourceTotal int `json:"source_total"`
	DestDone    int `json:"dest_done"`
}

// State is the shared state document the worker maintains. The dashboard
// re-reads it on every request and rewrites it only for pause/resume, so
// top-level fields it does not model are carried through verbatim.
type State struct {
	Jobs      []Job
	Stats     map[string]any
	Runner    Runner
	Inventory Inventory

	// extra holds top-level keys we do not model (inventory included, since
	// the typed copy above is a read-only projection).
	extra map[string]json.RawMessage
}

// NewState returns the default empty document used when the state file is
// absent or unreadable.
func NewState() State {
	return State{
		Jobs:   []Job{},
		Stats:  map[string]any{},
		Runner: NewRunner(),
	}
}

// UnmarshalJSON decodes the document, projecting the modeled fields and
// retaining everything else raw.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = NewState()
	s.extra = make(map[string]json.RawMessage)

	for key, val := range raw {
		switch key {
		case "jobs":
			if err := json.Unmarshal(val, &s.Jobs); err != nil {
				return err
			}
		case "stats":
			if err := json.Unmarshal(val, &s.Stats); err != nil {
				return err
			}
		case "runner":
			if err := json.Unmarshal(val, &s.Runner); err != nil {
				return err
			}
		case "inventory":
			if err := json.Unmarshal(val, &s.Inventory); err != nil {
				return err
			}
			s.extra[key] = val
		default:
			s.extra[key] = val
		}
	}
	if s.Jobs == nil {
		s.Jobs = []Job{}
	}
	if s.Stats == nil {
		s.Stats = map[string]any{}
	}
	if s.Runner == nil {
		s.Runner = NewRunner()
	}
	return nil
}

// MarshalJSON re-encodes the document, merging the retained raw fields back in.
func (s State) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.extra)+3)
	for key, val := range s.extra {
		out[key] = val
	}
	out["jobs"] = s.Jobs
	out["stats"] = s.Stats
	out["runner"] = s.Runner
	return json.Marshal(out)
}
