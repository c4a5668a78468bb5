package supervisor

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessFinder abstracts the platform process table. Orphan reaping needs
// "every process whose command line contains the script path", which is an
// inherently platform query; keeping it behind an interface keeps the
// supervisor testable without spawning anything.
type ProcessFinder interface {
	// FindByCommandLine returns the PIDs of all processes whose command line
	// contains substr.
	FindByCommandLine(ctx context.Context, substr string) ([]int, error)
	// Alive reports whether a process with the given PID exists.
	Alive(pid int) bool
	// Kill force-terminates the process with the given PID.
	Kill(pid int) error
}

// SystemFinder implements ProcessFinder against the real process table via
// gopsutil.
type SystemFinder struct{}

func (SystemFinder) FindByCommandLine(ctx context.Context, substr string) ([]int, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	var pids []int
	for _, p := range procs {
		cmdline, err := p.CmdlineWithContext(ctx)
		if err != nil {
			// Processes can exit mid-scan or deny access; skip them.
			continue
		}
		if strings.Contains(cmdline, substr) {
			pids = append(pids, int(p.Pid))
		}
	}
	return pids, nil
}

func (SystemFinder) Alive(pid int) bool {
	ok, err := process.PidExists(int32(pid))
	return err == nil && ok
}

func (SystemFinder) Kill(pid int) error {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return err
	}
	return p.Kill()
}
