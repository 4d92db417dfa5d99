package installer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireAndReleaseLock(t *testing.T) {
	dir := t.TempDir()

	lock, err := acquireLock(dir)
	if err != nil {
		t.Fatalf("acquireLock: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "install.lock")); err != nil {
		t.Errorf("lock file should exist: %v", err)
	}

	if err := lock.release(); err != nil {
		t.Fatalf("release: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "install.lock")); !os.IsNotExist(err) {
		t.Error("lock file should be removed after release")
	}
}

func TestAcquireLockExclusion(t *testing.T) {
	dir := t.TempDir()

	lock, err := acquireLock(dir)
	if err != nil {
		t.Fatalf("acquireLock: %v", err)
	}
	defer lock.release()

	if _, err := acquireLock(dir); !errors.Is(err, ErrLockHeld) {
		t.Errorf("second acquire = %v, want ErrLockHeld", err)
	}
}

func TestAcquireLockTakesOverStaleLock(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, "install.lock")

	if err := os.WriteFile(lockPath, []byte("pid=1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-staleLockThreshold - time.Minute)
	if err := os.Chtimes(lockPath, old, old); err != nil {
		t.Fatal(err)
	}

	lock, err := acquireLock(dir)
	if err != nil {
		t.Fatalf("acquireLock over stale lock: %v", err)
	}
	lock.release()
}

func TestReleaseIsIdempotent(t *testing.T) {
	lock, err := acquireLock(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := lock.release(); err != nil {
		t.Fatal(err)
	}
	if err := lock.release(); err != nil {
		t.Errorf("second release: %v", err)
	}
}
