package domain

// ETA is the completion projection derived from finished jobs and the
// worker's inventory scan. Omitted from the status payload entirely when no
// finished job carries usable timestamps.
type ETA struct {
	AvgPerFileSecs    int     `json:"avg_per_file_secs"`
	SourceTotal       int     `json:"source_total"`
	Completed         int     `json:"completed"`
	Remaining         int     `json:"remaining"`
	EstRemainingHours float64 `json:"est_remaining_hours"`
	EstRemainingDays  float64 `json:"est_remaining_days"`
}
