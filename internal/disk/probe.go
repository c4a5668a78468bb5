// Package disk reports capacity for the mounts the pipeline touches by
// shelling out to df, locally and over ssh. Probes are best-effort: any
// failure drops that mount from the result and is never surfaced.
package disk

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/mediamirror/dashboard/internal/domain"
	"github.com/mediamirror/dashboard/internal/envfile"
	"github.com/mediamirror/dashboard/internal/logger"
)

// Prober resolves mount paths from the shared config and queries their
// capacity with bounded timeouts.
type Prober struct {
	config        *envfile.Store
	localTimeout  time.Duration
	remoteTimeout time.Duration
}

// NewProber creates a prober backed by the given config store.
func NewProber(config *envfile.Store, localTimeout, remoteTimeout time.Duration) *Prober {
	if localTimeout <= 0 {
		localTimeout = 5 * time.Second
	}
	if remoteTimeout <= 0 {
		remoteTimeout = 8 * time.Second
	}
	return &Prober{
		config:        config,
		localTimeout:  localTimeout,
		remoteTimeout: remoteTimeout,
	}
}

// Usage returns capacity per mount label. Labels with missing configuration
// or failed probes are simply absent.
func (p *Prober) Usage(ctx context.Context) map[string]domain.DiskInfo {
	disks := make(map[string]domain.DiskInfo)
	cfg := p.config.Read()

	// Local mounts: source and temp.
	for _, m := range []struct {
		label string
		path  string
	}{
		{"source", cfg["SOURCE_MOVIES"]},
		{"temp", cfg["TEMP_DIR"]},
	} {
		if m.path == "" {
			continue
		}
		if info, ok := p.local(ctx, m.path); ok {
			disks[m.label] = info
		}
	}

	// Remote destination mount over ssh.
	host := cfg["DEST_HOST"]
	key := cfg["DEST_SSH_KEY"]
	path := cfg["DEST_MOVIES"]
	if host != "" && key != "" && path != "" {
		if info, ok := p.remote(ctx, host, key, path); ok {
			disks["dest"] = info
		}
	}

	return disks
}

func (p *Prober) local(ctx context.Context, path string) (domain.DiskInfo, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.localTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "df", "-h", path).Output()
	if err != nil {
		logger.CtxDebug(ctx, "df probe failed: path=%s, err=%v", path, err)
		return domain.DiskInfo{}, false
	}
	info, ok := parseDF(string(out))
	return info, ok
}

func (p *Prober) remote(ctx context.Context, host, key, path string) (domain.DiskInfo, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.remoteTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx,
		"ssh", "-i", key,
		"-o", "StrictHostKeyChecking=no",
		"-o", "ConnectTimeout=3",
		host, fmt.Sprintf("df -h '%s'", path),
	).Output()
	if err != nil {
		logger.CtxDebug(ctx, "remote df probe failed: host=%s, err=%v", host, err)
		return domain.DiskInfo{}, false
	}
	info, ok := parseDF(string(out))
	if !ok {
		return domain.DiskInfo{}, false
	}
	info.Mount = host + ":" + info.Mount
	return info, true
}

// parseDF extracts the data row of a df -h report:
//
//	Filesystem      Size  Used Avail Use% Mounted on
//	/dev/sda1       916G  498G  372G  58% /srv/media
func parseDF(out string) (domain.DiskInfo, bool) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		return domain.DiskInfo{}, false
	}
	parts := strings.Fields(lines[1])
	if len(parts) < 5 {
		return domain.DiskInfo{}, false
	}
	return domain.DiskInfo{
		Mount: parts[len(parts)-1],
		Size:  parts[1],
		Used:  parts[2],
		Avail: parts[3],
		Pct:   parts[4],
	}, true
}
