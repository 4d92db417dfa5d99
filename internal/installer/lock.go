package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	lockFileName = "install.lock"

	// staleLockThreshold is the maximum age of a lock before it's
	// considered abandoned by a crashed process.
	staleLockThreshold = 10 * time.Minute
)

// ErrLockHeld is returned when another process holds the install lock.
var ErrLockHeld = errors.New("install lock held: another install may be in progress")

// installLock guards the check-then-install sequence against concurrent
// invocations from other processes. This is an opt-in hardening layer; the
// baseline launcher assumes a single caller per install target.
type installLock struct {
	path string
	file *os.File
}

// acquireLock attempts to acquire an exclusive install lock inside dir.
// Uses O_CREATE|O_EXCL for atomic lock creation. A lock older than
// staleLockThreshold is treated as abandoned and taken over.
func acquireLock(dir string) (*installLock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lockPath := filepath.Join(dir, lockFileName)

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o600)
	if err != nil {
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}
		if stale, _ := isLockStale(lockPath); !stale {
			return nil, ErrLockHeld
		}
		// Remove stale lock and retry once
		os.Remove(lockPath)
		file, err = os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o600)
		if err != nil {
			return nil, ErrLockHeld
		}
	}

	lockData := fmt.Sprintf("pid=%d\ntimestamp=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	if _, err := file.WriteString(lockData); err != nil {
		file.Close()
		os.Remove(lockPath)
		return nil, fmt.Errorf("write lock data: %w", err)
	}

	return &installLock{path: lockPath, file: file}, nil
}

// release releases the lock.
func (l *installLock) release() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	if l.path != "" {
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove lock file: %w", err)
		}
	}

	return nil
}

// isLockStale checks if a lock file is older than the stale lock threshold.
func isLockStale(lockPath string) (bool, error) {
	info, err := os.Stat(lockPath)
	if err != nil {
		return false, err
	}
	return time.Since(info.ModTime()) > staleLockThreshold, nil
}
