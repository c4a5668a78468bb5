package domain

// DiskInfo is a point-in-time capacity snapshot for one mount, as reported by
// df. Human-readable strings are kept as-is; nothing here is persisted.
type DiskInfo struct {
	Mount string `json:"mount"`
	Size  string `json:"size"`
	Used  string `json:"used"`
	Avail string `json:"avail"`
	Pct   string `json:"pct"`
}
