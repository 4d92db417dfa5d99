// Package state persists the launcher's three durable records: the
// installed-version marker, the cached latest-known version, and the cache's
// fetch timestamp. Each record is a single trimmed text file in the install
// directory.
//
// Reads never fail: a missing or unreadable record reads as absent. Writes
// are best-effort: a lost write costs at most one redundant download on the
// next resolution pass, so failures are logged and swallowed.
package state

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vulnera-rs/vulnera-launcher/internal/logging"
)

const (
	installedVersionFile = "installed-version.txt"
	cachedVersionFile    = "cached-version.txt"
	cachedTimestampFile  = "cached-version-timestamp.txt"
)

// Store reads and writes the launcher's local state records.
type Store struct {
	dir   string
	clock Clock
	log   logging.Logger
}

// NewStore creates a store rooted at dir. A nil clock defaults to the system
// clock; a nil logger discards output.
func NewStore(dir string, clock Clock, log logging.Logger) *Store {
	if clock == nil {
		clock = RealClock{}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Store{dir: dir, clock: clock, log: log}
}

// Dir returns the directory holding the state records.
func (s *Store) Dir() string {
	return s.dir
}

// InstalledVersion returns the installed-version marker, or false if no
// marker is present.
func (s *Store) InstalledVersion() (string, bool) {
	return s.readRecord(installedVersionFile)
}

// WriteInstalledVersion records the version of the binary just installed.
// Best-effort: failures are logged, not returned.
func (s *Store) WriteInstalledVersion(version string) {
	s.writeRecord(installedVersionFile, version)
}

// LatestCache returns the cached latest-known version together with the
// seconds-since-epoch timestamp of when it was fetched. A present version
// with an unparsable timestamp reads as maximally stale (timestamp 0).
func (s *Store) LatestCache() (version string, fetchedAt uint64, ok bool) {
	version, ok = s.readRecord(cachedVersionFile)
	if !ok {
		return "", 0, false
	}

	if raw, rawOK := s.readRecord(cachedTimestampFile); rawOK {
		if ts, err := strconv.ParseUint(raw, 10, 64); err == nil {
			fetchedAt = ts
		}
	}
	return version, fetchedAt, true
}

// WriteLatestCache records the latest-known version along with the current
// time. Best-effort: failures are logged, not returned.
func (s *Store) WriteLatestCache(version string) {
	s.writeRecord(cachedVersionFile, version)
	s.writeRecord(cachedTimestampFile, strconv.FormatUint(secs(s.clock.Now()), 10))
}

// readRecord reads a single trimmed text record. Missing or empty records
// read as absent.
func (s *Store) readRecord(name string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", false
	}
	return value, true
}

// writeRecord writes a single text record, creating the state directory
// first if needed.
func (s *Store) writeRecord(name, value string) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.log.Warn("failed to create state directory", "dir", s.dir, "error", err)
		return
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		s.log.Warn("failed to write state record", "path", path, "error", err)
	}
}
