// Package version decides which adapter version the launcher should target.
//
// The decision is a short-circuiting priority chain: explicit override,
// fresh cache, live fetch, stale cache, hard-coded floor. Every invocation
// returns a usable version string; network and cache failures only move the
// decision further down the chain.
package version

import (
	"context"
	"strings"
	"time"

	"github.com/vulnera-rs/vulnera-launcher/internal/logging"
	"github.com/vulnera-rs/vulnera-launcher/internal/state"
)

const (
	// Floor is the absolute minimum adapter version, used only when the
	// remote listing is unreachable and no version was ever cached.
	Floor = "0.1.1"

	// DefaultTTL is how long a cached version stays fresh before the
	// remote listing is re-queried.
	DefaultTTL = 24 * time.Hour
)

// Source supplies the latest stable version from the remote listing.
type Source interface {
	LatestStable(ctx context.Context) (string, bool)
}

// Resolver produces the single version string to target.
type Resolver struct {
	store  *state.Store
	source Source
	clock  state.Clock
	ttl    time.Duration
	floor  string
	log    logging.Logger
}

// Config holds the resolver's collaborators. Store and Source are required.
type Config struct {
	Store  *state.Store
	Source Source
	// Clock defaults to the system clock.
	Clock state.Clock
	// TTL defaults to DefaultTTL; Floor defaults to Floor.
	TTL    time.Duration
	Floor  string
	Logger logging.Logger
}

// New creates a resolver from cfg, applying defaults for optional fields.
func New(cfg Config) *Resolver {
	if cfg.Clock == nil {
		cfg.Clock = state.RealClock{}
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Floor == "" {
		cfg.Floor = Floor
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	return &Resolver{
		store:  cfg.Store,
		source: cfg.Source,
		clock:  cfg.Clock,
		ttl:    cfg.TTL,
		floor:  cfg.Floor,
		log:    cfg.Logger,
	}
}

// Resolve returns the version to target. It is total: some branch of the
// chain always yields a version. The override, when non-empty, is returned
// verbatim without any validation against remote availability.
func (r *Resolver) Resolve(ctx context.Context, override string) string {
	if v := strings.TrimSpace(override); v != "" {
		r.log.Info("adapter version pinned by override", "version", v)
		return v
	}

	now := secondsSinceEpoch(r.clock.Now())
	ttl := uint64(r.ttl / time.Second)

	if cached, fetchedAt, ok := r.store.LatestCache(); ok {
		age := saturatingSub(now, fetchedAt)
		if age < ttl {
			r.log.Info("adapter version from cache", "version", cached, "age_seconds", age)
			return cached
		}
	}

	r.log.Debug("querying releases listing for latest adapter version")
	if fetched, ok := r.source.LatestStable(ctx); ok {
		r.log.Info("adapter version from releases listing", "version", fetched)
		r.store.WriteLatestCache(fetched)
		return fetched
	}

	if cached, _, ok := r.store.LatestCache(); ok {
		r.log.Warn("releases listing unavailable; using stale cached version", "version", cached)
		return cached
	}

	r.log.Warn("releases listing unavailable and no cache; using floor version", "version", r.floor)
	return r.floor
}

func secondsSinceEpoch(t time.Time) uint64 {
	u := t.Unix()
	if u < 0 {
		return 0
	}
	return uint64(u)
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
