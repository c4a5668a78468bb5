package disk

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mediamirror/dashboard/internal/envfile"
)

func TestParseDF(t *testing.T) {
	tests := []struct {
		name      string
		out       string
		wantOK    bool
		wantMount string
		wantPct   string
	}{
		{
			name: "normal report",
			out: "Filesystem      Size  Used Avail Use% Mounted on\n" +
				"/dev/sda1       916G  498G  372G  58% /srv/media\n",
			wantOK:    true,
			wantMount: "/srv/media",
			wantPct:   "58%",
		},
		{
			name: "mount with spaces resolves to last column",
			out: "Filesystem 1024-blocks Used Available Capacity Mounted on\n" +
				"tank/media 9650923520 7240281088 2410642432 75% /mnt/tank\n",
			wantOK:    true,
			wantMount: "/mnt/tank",
			wantPct:   "75%",
		},
		{name: "header only", out: "Filesystem      Size  Used Avail Use% Mounted on\n", wantOK: false},
		{name: "empty output", out: "", wantOK: false},
		{name: "short data row", out: "header\n/dev/sda1 916G\n", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := parseDF(tt.out)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			if info.Mount != tt.wantMount {
				t.Errorf("expected mount %q, got %q", tt.wantMount, info.Mount)
			}
			if info.Pct != tt.wantPct {
				t.Errorf("expected pct %q, got %q", tt.wantPct, info.Pct)
			}
		})
	}
}

func TestUsageWithoutConfiguration(t *testing.T) {
	store := envfile.NewStore(filepath.Join(t.TempDir(), "config.env"))
	p := NewProber(store, time.Second, time.Second)

	disks := p.Usage(context.Background())
	if len(disks) != 0 {
		t.Errorf("expected no mounts without configuration, got %v", disks)
	}
}

func TestUsageLocalMount(t *testing.T) {
	if _, err := os.Stat("/usr/bin/df"); err != nil {
		if _, err := os.Stat("/bin/df"); err != nil {
			t.Skip("needs df")
		}
	}
	dir := t.TempDir()
	store := envfile.NewStore(filepath.Join(dir, "config.env"))
	if err := store.Write(map[string]string{"SOURCE_MOVIES": dir}); err != nil {
		t.Fatalf("write config: %v", err)
	}
	p := NewProber(store, 5*time.Second, time.Second)

	disks := p.Usage(context.Background())
	info, ok := disks["source"]
	if !ok {
		t.Fatalf("expected a source mount, got %v", disks)
	}
	if info.Mount == "" || info.Size == "" || info.Pct == "" {
		t.Errorf("incomplete disk info: %+v", info)
	}
}

func TestUsageFailedProbeOmitsMount(t *testing.T) {
	dir := t.TempDir()
	store := envfile.NewStore(filepath.Join(dir, "config.env"))
	if err := store.Write(map[string]string{
		"TEMP_DIR": filepath.Join(dir, "does-not-exist"),
	}); err != nil {
		t.Fatalf("write config: %v", err)
	}
	p := NewProber(store, time.Second, time.Second)

	disks := p.Usage(context.Background())
	if _, ok := disks["temp"]; ok {
		t.Errorf("expected failed probe to omit the mount, got %v", disks)
	}
}
