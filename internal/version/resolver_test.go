package version

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vulnera-rs/vulnera-launcher/internal/state"
)

// fakeSource counts invocations and serves a fixed answer.
type fakeSource struct {
	version string
	ok      bool
	calls   int
}

func (f *fakeSource) LatestStable(ctx context.Context) (string, bool) {
	f.calls++
	return f.version, f.ok
}

func newTestResolver(t *testing.T, src Source, now time.Time) (*Resolver, *state.Store) {
	t.Helper()
	clock := state.TestClock{FixedTime: now}
	store := state.NewStore(t.TempDir(), clock, nil)
	r := New(Config{Store: store, Source: src, Clock: clock})
	return r, store
}

func TestResolveExplicitOverrideWins(t *testing.T) {
	src := &fakeSource{version: "9.9.9", ok: true}
	now := time.Unix(1_700_000_000, 0)
	r, store := newTestResolver(t, src, now)
	store.WriteLatestCache("0.5.0")

	got := r.Resolve(context.Background(), "0.1.7")
	if got != "0.1.7" {
		t.Errorf("Resolve = %q, want override %q", got, "0.1.7")
	}
	if src.calls != 0 {
		t.Errorf("source invoked %d times, want 0", src.calls)
	}
}

func TestResolveWhitespaceOverrideIgnored(t *testing.T) {
	src := &fakeSource{version: "0.6.0", ok: true}
	r, _ := newTestResolver(t, src, time.Unix(1_700_000_000, 0))

	got := r.Resolve(context.Background(), "   ")
	if got != "0.6.0" {
		t.Errorf("Resolve = %q, want %q", got, "0.6.0")
	}
}

func TestResolveFreshCachePreferredOverNetwork(t *testing.T) {
	src := &fakeSource{version: "9.9.9", ok: true}
	now := time.Unix(1_700_000_000, 0)
	r, store := newTestResolver(t, src, now)
	store.WriteLatestCache("0.5.0") // fetched "now", age 0

	got := r.Resolve(context.Background(), "")
	if got != "0.5.0" {
		t.Errorf("Resolve = %q, want cached %q", got, "0.5.0")
	}
	if src.calls != 0 {
		t.Errorf("source invoked %d times, want 0 (fresh cache)", src.calls)
	}
}

func TestResolveLiveFetchPersistsCache(t *testing.T) {
	src := &fakeSource{version: "0.7.2", ok: true}
	now := time.Unix(1_700_000_000, 0)
	r, store := newTestResolver(t, src, now)

	got := r.Resolve(context.Background(), "")
	if got != "0.7.2" {
		t.Errorf("Resolve = %q, want fetched %q", got, "0.7.2")
	}
	if src.calls != 1 {
		t.Errorf("source invoked %d times, want 1", src.calls)
	}

	cached, fetchedAt, ok := store.LatestCache()
	if !ok || cached != "0.7.2" {
		t.Errorf("cache = %q, %v; want %q persisted", cached, ok, "0.7.2")
	}
	if fetchedAt != 1_700_000_000 {
		t.Errorf("cache timestamp = %d, want %d", fetchedAt, 1_700_000_000)
	}
}

func TestResolveExpiredCacheTriggersFetch(t *testing.T) {
	src := &fakeSource{version: "0.8.0", ok: true}
	fetchTime := time.Unix(1_700_000_000, 0)
	clock := state.TestClock{FixedTime: fetchTime}
	store := state.NewStore(t.TempDir(), clock, nil)
	store.WriteLatestCache("0.5.0")

	// A day plus a second later, the cache has expired.
	later := state.TestClock{FixedTime: fetchTime.Add(24*time.Hour + time.Second)}
	r := New(Config{Store: store, Source: src, Clock: later})

	got := r.Resolve(context.Background(), "")
	if got != "0.8.0" {
		t.Errorf("Resolve = %q, want fetched %q", got, "0.8.0")
	}
	if src.calls != 1 {
		t.Errorf("source invoked %d times, want 1", src.calls)
	}
}

func TestResolveStaleCacheUsedWhenFetchFails(t *testing.T) {
	src := &fakeSource{ok: false}
	fetchTime := time.Unix(1_700_000_000, 0)
	clock := state.TestClock{FixedTime: fetchTime}
	store := state.NewStore(t.TempDir(), clock, nil)
	store.WriteLatestCache("0.5.0")

	later := state.TestClock{FixedTime: fetchTime.Add(48 * time.Hour)}
	r := New(Config{Store: store, Source: src, Clock: later})

	got := r.Resolve(context.Background(), "")
	if got != "0.5.0" {
		t.Errorf("Resolve = %q, want stale cached %q, not the floor", got, "0.5.0")
	}
}

func TestResolveFloorWhenNoCacheAndFetchFails(t *testing.T) {
	src := &fakeSource{ok: false}
	r, _ := newTestResolver(t, src, time.Unix(1_700_000_000, 0))

	got := r.Resolve(context.Background(), "")
	if got != Floor {
		t.Errorf("Resolve = %q, want floor %q", got, Floor)
	}
}

func TestResolveUnparsableTimestampCountsAsStale(t *testing.T) {
	src := &fakeSource{version: "0.9.0", ok: true}
	now := time.Unix(1_700_000_000, 0)
	clock := state.TestClock{FixedTime: now}
	store := state.NewStore(t.TempDir(), clock, nil)
	store.WriteLatestCache("0.5.0")

	// Corrupt the timestamp record; the cache must read as maximally stale.
	tsPath := filepath.Join(store.Dir(), "cached-version-timestamp.txt")
	if err := os.WriteFile(tsPath, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := New(Config{Store: store, Source: src, Clock: clock})
	got := r.Resolve(context.Background(), "")
	if got != "0.9.0" {
		t.Errorf("Resolve = %q, want live fetch %q", got, "0.9.0")
	}
	if src.calls != 1 {
		t.Errorf("source invoked %d times, want 1", src.calls)
	}
}
