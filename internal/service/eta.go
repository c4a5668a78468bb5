package service

import (
	"math"

	"github.com/mediamirror/dashboard/internal/domain"
)

// ComputeETA projects time-to-completion from finished jobs and the worker's
// inventory scan. Returns nil when no done job carries both timestamps, or
// when any of them fails to parse: the projection is all-or-nothing, never
// partially populated.
func ComputeETA(st domain.State) *domain.ETA {
	var totalSecs float64
	var samples int
	for _, job := range st.Jobs {
		if job.Status() != domain.JobStatusDone || !job.HasTimestamps() {
			continue
		}
		elapsed, ok := job.Elapsed()
		if !ok {
			return nil
		}
		totalSecs += elapsed.Seconds()
		samples++
	}
	if samples == 0 {
		return nil
	}
	avgSecs := totalSecs / float64(samples)

	// Inventory baseline plus this session's finished count. The overlap is
	// intentional: dest_done is the durable destination count, the session
	// delta covers files the scan has not seen land yet.
	sessionDone := 0
	for _, job := range st.Jobs {
		switch job.Status() {
		case domain.JobStatusDone, domain.JobStatusSkipped:
			sessionDone++
		}
	}
	completed := st.Inventory.DestDone + sessionDone

	remaining := 0
	if st.Inventory.SourceTotal > 0 {
		remaining = max(0, st.Inventory.SourceTotal-completed)
	}

	return &domain.ETA{
		AvgPerFileSecs:    int(math.Round(avgSecs)),
		SourceTotal:       st.Inventory.SourceTotal,
		Completed:         completed,
		Remaining:         remaining,
		EstRemainingHours: round1(float64(remaining) * avgSecs / 3600),
		EstRemainingDays:  round1(float64(remaining) * avgSecs / 86400),
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
