package launcher

import "strings"

// Environment variables consumed from the caller's shell environment.
const (
	// EnvAdapterPath points at a pre-built adapter binary and skips the
	// whole version/installer pipeline (development and CI escape hatch).
	EnvAdapterPath = "VULNERA_ADAPTER_PATH"
	// EnvAdapterVersion pins the adapter version verbatim.
	EnvAdapterVersion = "VULNERA_ADAPTER_VERSION"
)

// Environment variables forwarded to the spawned adapter.
const (
	EnvAPIURL = "VULNERA_API_URL"
	EnvAPIKey = "VULNERA_API_KEY"
	EnvLog    = "VULNERA_LOG"

	defaultLogFilter = "info"
)

// forwardedKeys is the allow-list of variables copied to the adapter.
var forwardedKeys = []string{EnvAPIURL, EnvAPIKey, EnvLog}

// EnvVar is a single environment entry. Order is preserved end to end.
type EnvVar struct {
	Key   string
	Value string
}

// EnvSnapshot is the caller-supplied shell environment. The launcher never
// reads the process environment directly.
type EnvSnapshot []EnvVar

// Get returns the value of the first entry with the given key.
func (s EnvSnapshot) Get(key string) (string, bool) {
	for _, v := range s {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

// SnapshotFromEnviron converts os.Environ-style "KEY=VALUE" strings into a
// snapshot, preserving order.
func SnapshotFromEnviron(environ []string) EnvSnapshot {
	snapshot := make(EnvSnapshot, 0, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		snapshot = append(snapshot, EnvVar{Key: key, Value: value})
	}
	return snapshot
}

// forwardEnv builds the ordered environment list passed to the adapter:
// allow-listed entries with non-blank values, copied verbatim in snapshot
// order, plus a default log filter when none was set.
func forwardEnv(snapshot EnvSnapshot) []EnvVar {
	env := make([]EnvVar, 0, len(forwardedKeys))
	for _, v := range snapshot {
		if isForwarded(v.Key) && strings.TrimSpace(v.Value) != "" {
			env = append(env, v)
		}
	}

	hasLog := false
	for _, v := range env {
		if v.Key == EnvLog {
			hasLog = true
			break
		}
	}
	if !hasLog {
		env = append(env, EnvVar{Key: EnvLog, Value: defaultLogFilter})
	}

	return env
}

func isForwarded(key string) bool {
	for _, k := range forwardedKeys {
		if k == key {
			return true
		}
	}
	return false
}
