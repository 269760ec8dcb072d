package runlock

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ErrLocked is returned when another live planner process holds the lock
var ErrLocked = errors.New("another planner run holds the lock")

// Lock is a PID file that keeps two planner runs from writing inventories back at the same time
type Lock struct {
	path string
}

// New creates a lock backed by the file at path
func New(path string) *Lock {
	return &Lock{path: path}
}

// Path returns the lock file location
func (l *Lock) Path() string {
	return l.path
}

// Acquire creates the lock file holding the current PID.
// A lock file left behind by a dead process is removed and taken over.
func (l *Lock) Acquire() error {
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d\n", os.Getpid())
			cerr := f.Close()
			if werr != nil {
				return fmt.Errorf("failed to write lock file: %w", werr)
			}
			return cerr
		}
		if !os.IsExist(err) {
			return fmt.Errorf("failed to create lock file: %w", err)
		}

		pid, ok := l.holder()
		if ok && isProcessRunning(pid) {
			return fmt.Errorf("%w (PID %d, %s)", ErrLocked, pid, l.path)
		}
		// unreadable or stale: remove and retry once
		_ = os.Remove(l.path)
	}
	return fmt.Errorf("%w (%s)", ErrLocked, l.path)
}

// Release removes the lock file
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

func (l *Lock) holder() (int, bool) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return pid, true
}

// isProcessRunning sends signal 0, which only checks that the process exists
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return true
	case errors.Is(err, syscall.EPERM):
		// exists, owned by someone else
		return true
	default:
		return false
	}
}
