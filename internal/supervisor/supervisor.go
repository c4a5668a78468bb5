// Package supervisor owns the lifecycle of the external worker process:
// singleton start, total stop with orphan reaping, and restart with a
// settling delay.
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/mediamirror/dashboard/internal/logger"
)

// ErrAlreadyRunning is returned by Start when a live worker is found.
var ErrAlreadyRunning = errors.New("runner is already running")

const (
	stdoutLogName = "runner-stdout.log"
	stderrLogName = "runner-stderr.log"
)

// Options configures a Supervisor.
type Options struct {
	InstallDir  string
	LogDir      string
	Script      string        // script file name under InstallDir
	PidFile     string        // pid file name under InstallDir
	SettleDelay time.Duration // pause between stop and start during restart
	Finder      ProcessFinder
}

// Supervisor manages the worker process. All state lives in the filesystem
// and the process table; the struct itself only carries configuration plus a
// mutex serializing lifecycle operations.
type Supervisor struct {
	installDir string
	logDir     string
	script     string
	pidFile    string
	settle     time.Duration
	finder     ProcessFinder

	mu sync.Mutex
}

// New creates a supervisor. A nil Finder defaults to the real process table.
func New(opts Options) *Supervisor {
	if opts.Script == "" {
		opts.Script = "media-mirror.sh"
	}
	if opts.PidFile == "" {
		opts.PidFile = "runner.pid"
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = 2 * time.Second
	}
	if opts.Finder == nil {
		opts.Finder = SystemFinder{}
	}
	return &Supervisor{
		installDir: opts.InstallDir,
		logDir:     opts.LogDir,
		script:     opts.Script,
		pidFile:    opts.PidFile,
		settle:     opts.SettleDelay,
		finder:     opts.Finder,
	}
}

// ScriptPath returns the worker's invocation path, which doubles as its
// process-table signature for orphan reaping.
func (s *Supervisor) ScriptPath() string {
	return filepath.Join(s.installDir, s.script)
}

func (s *Supervisor) pidPath() string {
	return filepath.Join(s.installDir, s.pidFile)
}

// Pid returns the PID recorded in the pid file if that process exists, else 0.
// A stale file is treated as absent but left in place; removing it is a stop
// concern, not a probe concern.
func (s *Supervisor) Pid() int {
	data, err := os.ReadFile(s.pidPath())
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0
	}
	if !s.finder.Alive(pid) {
		return 0
	}
	return pid
}

// Start launches the worker detached (own session) with stdout/stderr
// appended to log files, and returns the new PID. Fails with
// ErrAlreadyRunning if a live worker is found. The worker writes its own pid
// file on startup; the supervisor never does.
func (s *Supervisor) Start(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start(ctx)
}

func (s *Supervisor) start(ctx context.Context) (int, error) {
	if pid := s.Pid(); pid != 0 {
		return 0, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	}

	if err := os.MkdirAll(s.logDir, 0o755); err != nil {
		return 0, fmt.Errorf("create log dir: %w", err)
	}
	stdout, err := openAppend(filepath.Join(s.logDir, stdoutLogName))
	if err != nil {
		return 0, err
	}
	defer stdout.Close()
	stderr, err := openAppend(filepath.Join(s.logDir, stderrLogName))
	if err != nil {
		return 0, err
	}
	defer stderr.Close()

	cmd := exec.Command("/bin/bash", s.ScriptPath())
	cmd.Dir = s.installDir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	// New session: the worker outlives the dashboard and never receives its
	// terminal signals.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start runner: %w", err)
	}
	pid := cmd.Process.Pid
	_ = cmd.Process.Release()

	logger.CtxInfo(ctx, "runner started: pid=%d, script=%s", pid, s.ScriptPath())
	return pid, nil
}

// Stop guarantees no worker instance remains, even with a stale or missing
// pid file: it kills every process matching the script path, additionally
// kills the pid-file process, and removes the pid file. Termination errors
// are swallowed; the post-condition "nothing left running" is the only
// contract. Returns the PID recorded before cleanup, or 0.
func (s *Supervisor) Stop(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop(ctx)
}

func (s *Supervisor) stop(ctx context.Context) int {
	recorded := s.Pid()

	if pids, err := s.finder.FindByCommandLine(ctx, s.ScriptPath()); err == nil {
		for _, pid := range pids {
			_ = s.finder.Kill(pid)
		}
	} else {
		logger.CtxWarn(ctx, "process table scan failed: err=%v", err)
	}

	if recorded != 0 {
		// May already be dead from the sweep above; that is not an error.
		_ = s.finder.Kill(recorded)
	}

	if err := os.Remove(s.pidPath()); err != nil && !os.IsNotExist(err) {
		logger.CtxWarn(ctx, "pid file removal failed: err=%v", err)
	}

	logger.CtxInfo(ctx, "runner stopped: pid=%d", recorded)
	return recorded
}

// Restart stops the worker, waits the settling delay for process teardown
// and file-lock release to complete, then starts it again.
func (s *Supervisor) Restart(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stop(ctx)
	time.Sleep(s.settle)
	return s.start(ctx)
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}
