package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mediamirror/dashboard/internal/disk"
	"github.com/mediamirror/dashboard/internal/domain"
	"github.com/mediamirror/dashboard/internal/envfile"
	"github.com/mediamirror/dashboard/internal/state"
	"github.com/mediamirror/dashboard/internal/supervisor"
)

const (
	maxActiveJobs = 50
	maxRecentDone = 20
	maxFailedJobs = 20
)

// StatusService assembles the aggregate dashboard snapshot. It holds no
// state of its own; every value is recomputed from disk and the process
// table on each call.
type StatusService struct {
	state  *state.Store
	config *envfile.Store
	disks  *disk.Prober
	sup    *supervisor.Supervisor
}

// NewStatusService creates a status service over the given components.
func NewStatusService(st *state.Store, cfg *envfile.Store, disks *disk.Prober, sup *supervisor.Supervisor) *StatusService {
	return &StatusService{state: st, config: cfg, disks: disks, sup: sup}
}

// Status is the /api/status payload.
type Status struct {
	Runner     domain.Runner              `json:"runner"`
	RunnerPID  int                        `json:"runner_pid"`
	Stats      map[string]any             `json:"stats"`
	ETA        *domain.ETA                `json:"eta,omitempty"`
	ActiveJobs []domain.Job               `json:"active_jobs"`
	RecentDone []domain.Job               `json:"recent_done"`
	Failed     []domain.Job               `json:"failed"`
	Disks      map[string]domain.DiskInfo `json:"disks"`
	Config     map[string]string          `json:"config"`
	Timestamp  string                     `json:"timestamp"`
}

// Snapshot reads the shared state fresh and derives the full status view.
func (s *StatusService) Snapshot(ctx context.Context) Status {
	st := s.state.Read()
	cfg := s.config.Read()

	active := make([]domain.Job, 0, maxActiveJobs)
	recentDone := make([]domain.Job, 0, maxRecentDone)
	failed := make([]domain.Job, 0, maxFailedJobs)
	for _, job := range st.Jobs {
		switch status := job.Status(); {
		case status.Active():
			if len(active) < maxActiveJobs {
				active = append(active, job)
			}
		case status == domain.JobStatusDone:
			// Last N in document order, not re-sorted by time.
			recentDone = append(recentDone, job)
			if len(recentDone) > maxRecentDone {
				recentDone = recentDone[1:]
			}
		case status == domain.JobStatusFailed:
			if len(failed) < maxFailedJobs {
				failed = append(failed, job)
			}
		}
	}

	return Status{
		Runner:     st.Runner,
		RunnerPID:  s.sup.Pid(),
		Stats:      st.Stats,
		ETA:        ComputeETA(st),
		ActiveJobs: active,
		RecentDone: recentDone,
		Failed:     failed,
		Disks:      s.disks.Usage(ctx),
		Config:     ConfigSummary(cfg),
		Timestamp:  time.Now().Format(time.RFC3339),
	}
}

// configKeyMap maps the friendly field names the front end uses to the keys
// in config.env. POST /api/config runs updates through this map; names it
// does not know pass through unmapped, so new keys work without a release.
var configKeyMap = map[string]string{
	"source_movies":  "SOURCE_MOVIES",
	"source_tv":      "SOURCE_TV",
	"dest_host":      "DEST_HOST",
	"dest_movies":    "DEST_MOVIES",
	"dest_tv":        "DEST_TV",
	"temp_dir":       "TEMP_DIR",
	"dest_ssh_key":   "DEST_SSH_KEY",
	"target_height":  "TARGET_HEIGHT",
	"ffmpeg_crf":     "FFMPEG_CRF",
	"ffmpeg_preset":  "FFMPEG_PRESET",
	"ffmpeg_threads": "FFMPEG_THREADS",
	"rsync_bwlimit":  "RSYNC_BWLIMIT",
	"scan_interval":  "SCAN_INTERVAL",
	"dashboard_port": "DASHBOARD_PORT",
}

// configDefaults fills the summary for tuning knobs the config file may not
// set yet.
var configDefaults = map[string]string{
	"target_height":  "720",
	"ffmpeg_crf":     "23",
	"ffmpeg_preset":  "medium",
	"ffmpeg_threads": "4",
	"rsync_bwlimit":  "100000",
	"scan_interval":  "3600",
	"dashboard_port": "8080",
}

// ConfigSummary projects the raw config into the friendly-named summary the
// status payload carries.
func ConfigSummary(cfg map[string]string) map[string]string {
	out := make(map[string]string, len(configKeyMap))
	for friendly, key := range configKeyMap {
		val := cfg[key]
		if val == "" {
			val = configDefaults[friendly]
		}
		out[friendly] = val
	}
	return out
}

// MapConfigUpdates translates a friendly-named update request into config
// file keys with stringified values.
func MapConfigUpdates(updates map[string]any) map[string]string {
	mapped := make(map[string]string, len(updates))
	for name, val := range updates {
		key, ok := configKeyMap[name]
		if !ok {
			key = name
		}
		mapped[key] = stringify(val)
	}
	return mapped
}

func stringify(val any) string {
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", val)
}
