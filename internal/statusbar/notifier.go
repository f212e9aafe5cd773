package statusbar

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/discovery"
	"github.com/rs/zerolog/log"
)

var logger = log.With().Str("component", "statusbar").Logger()

// ErrNotRunning is returned when no status bar process matches.
var ErrNotRunning = errors.New("status bar process not found")

// Notifier signals a status bar (i3blocks by default) so it re-reads the
// last line file. It is meant to run after publish.FileSink in a publish.Multi.
type Notifier struct {
	process string
	signal  syscall.Signal

	pidMutex sync.Mutex
	pid      int

	// lookup 查找进程 PID，测试时可替换
	lookup func(ctx context.Context, process string) (int, error)
}

func NewNotifier(process string, signal int) *Notifier {
	return &Notifier{
		process: process,
		signal:  syscall.Signal(signal),
		pid:     -1,
		lookup:  pgrep,
	}
}

// Publish sends the refresh signal. The PID is cached and looked up again
// when the cached process has gone away.
func (n *Notifier) Publish(ctx context.Context, f discovery.Finding) error {
	n.pidMutex.Lock()
	defer n.pidMutex.Unlock()

	if n.pid > 0 && syscall.Kill(n.pid, n.signal) == nil {
		return nil
	}

	pid, err := n.lookup(ctx, n.process)
	if err != nil {
		n.pid = -1
		return err
	}
	if pid != n.pid {
		logger.Debug().Int("old_pid", n.pid).Int("pid", pid).Str("process", n.process).Msg("Status bar PID updated")
	}
	n.pid = pid

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}
	if err := process.Signal(n.signal); err != nil {
		return fmt.Errorf("failed to send signal %d to process %d: %w", int(n.signal), pid, err)
	}
	return nil
}

func pgrep(ctx context.Context, process string) (int, error) {
	output, err := exec.CommandContext(ctx, "pgrep", "-x", process).Output()
	if err != nil {
		return -1, fmt.Errorf("%w: %s", ErrNotRunning, process)
	}
	return parsePID(string(output))
}

// parsePID 取 pgrep 输出的第一个 PID
func parsePID(output string) (int, error) {
	first, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	if first == "" {
		return -1, ErrNotRunning
	}
	pid, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return -1, fmt.Errorf("failed to parse PID %q: %w", first, err)
	}
	return pid, nil
}
