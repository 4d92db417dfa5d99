package launcher

import (
	"reflect"
	"testing"
)

func TestForwardEnvAllowList(t *testing.T) {
	snapshot := EnvSnapshot{
		{Key: "PATH", Value: "/usr/bin"},
		{Key: "VULNERA_API_URL", Value: "https://api.example.com"},
		{Key: "SECRET_TOKEN", Value: "do-not-forward"},
		{Key: "VULNERA_API_KEY", Value: "k-123"},
		{Key: "VULNERA_LOG", Value: "debug"},
	}

	got := forwardEnv(snapshot)
	want := []EnvVar{
		{Key: "VULNERA_API_URL", Value: "https://api.example.com"},
		{Key: "VULNERA_API_KEY", Value: "k-123"},
		{Key: "VULNERA_LOG", Value: "debug"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("forwardEnv = %v, want %v", got, want)
	}
}

func TestForwardEnvInjectsDefaultLogFilter(t *testing.T) {
	snapshot := EnvSnapshot{
		{Key: "VULNERA_API_KEY", Value: "k-123"},
	}

	got := forwardEnv(snapshot)
	want := []EnvVar{
		{Key: "VULNERA_API_KEY", Value: "k-123"},
		{Key: "VULNERA_LOG", Value: "info"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("forwardEnv = %v, want %v", got, want)
	}
}

func TestForwardEnvSkipsBlankValues(t *testing.T) {
	snapshot := EnvSnapshot{
		{Key: "VULNERA_API_URL", Value: "   "},
		{Key: "VULNERA_LOG", Value: ""},
	}

	got := forwardEnv(snapshot)
	want := []EnvVar{
		{Key: "VULNERA_LOG", Value: "info"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("forwardEnv = %v, want %v", got, want)
	}
}

func TestSnapshotFromEnviron(t *testing.T) {
	snapshot := SnapshotFromEnviron([]string{
		"VULNERA_LOG=trace",
		"EMPTY=",
		"NOEQUALS",
		"=orphan",
	})

	want := EnvSnapshot{
		{Key: "VULNERA_LOG", Value: "trace"},
		{Key: "EMPTY", Value: ""},
	}
	if !reflect.DeepEqual(snapshot, want) {
		t.Errorf("SnapshotFromEnviron = %v, want %v", snapshot, want)
	}

	if v, ok := snapshot.Get("VULNERA_LOG"); !ok || v != "trace" {
		t.Errorf("Get = %q, %v", v, ok)
	}
	if _, ok := snapshot.Get("MISSING"); ok {
		t.Error("Get should miss for absent key")
	}
}
