// Package launcher composes platform resolution, version resolution, and
// installation into the single entry point the host calls each time it needs
// to spawn the vulnera-adapter.
//
// The host owns process spawning and stdio wiring; the launcher only decides
// which executable to run and which environment to hand it.
package launcher

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vulnera-rs/vulnera-launcher/internal/installer"
	"github.com/vulnera-rs/vulnera-launcher/internal/logging"
	"github.com/vulnera-rs/vulnera-launcher/internal/platform"
	"github.com/vulnera-rs/vulnera-launcher/internal/state"
	"github.com/vulnera-rs/vulnera-launcher/internal/version"
)

// Command is the result of a resolution pass: the executable to spawn and
// the ordered environment to forward. The adapter takes no arguments; it
// speaks the line protocol over stdio.
type Command struct {
	Path string
	Env  []EnvVar
}

// Launcher orchestrates one resolution pass per call.
type Launcher struct {
	detector  platform.Detector
	resolver  *version.Resolver
	installer *installer.Installer
	store     *state.Store
	cache     *PathCache
	log       logging.Logger
}

// Config holds the launcher's collaborators. Resolver, Installer, and Store
// are required; Detector defaults to real host detection and Cache to a
// fresh empty cache.
type Config struct {
	Detector  platform.Detector
	Resolver  *version.Resolver
	Installer *installer.Installer
	Store     *state.Store
	Cache     *PathCache
	Logger    logging.Logger
}

// New creates a launcher from cfg.
func New(cfg Config) (*Launcher, error) {
	if cfg.Resolver == nil {
		return nil, fmt.Errorf("Resolver is required")
	}
	if cfg.Installer == nil {
		return nil, fmt.Errorf("Installer is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("Store is required")
	}
	if cfg.Detector == nil {
		cfg.Detector = platform.NewDetector()
	}
	if cfg.Cache == nil {
		cfg.Cache = &PathCache{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	return &Launcher{
		detector:  cfg.Detector,
		resolver:  cfg.Resolver,
		installer: cfg.Installer,
		store:     cfg.Store,
		cache:     cfg.Cache,
		log:       cfg.Logger,
	}, nil
}

// ResolveCommand resolves the adapter executable for the given shell
// environment snapshot. It may be invoked many times over the process's
// life and converges quickly to the already-installed fast path.
func (l *Launcher) ResolveCommand(ctx context.Context, env EnvSnapshot) (Command, error) {
	// 1. Full-path override bypasses everything.
	if override, _ := env.Get(EnvAdapterPath); strings.TrimSpace(override) != "" {
		path := strings.TrimSpace(override)
		l.log.Info("using adapter path override", "path", path)
		return Command{Path: path, Env: forwardEnv(env)}, nil
	}

	// 2. Platform descriptor; unsupported platforms are fatal.
	info, err := l.detector.Detect(ctx)
	if err != nil {
		return Command{}, fmt.Errorf("detect platform: %w", err)
	}
	desc, err := platform.Resolve(info.OS, info.Arch)
	if err != nil {
		return Command{}, err
	}

	// 3. Target version.
	pin, _ := env.Get(EnvAdapterVersion)
	targetVersion := l.resolver.Resolve(ctx, pin)

	// 4. Fast path: a previously resolved path may be reused only when it
	// still exists and the installed marker matches the just-resolved
	// version. Otherwise run the installer, which is idempotent.
	path, ok := l.reusablePath(targetVersion)
	if !ok {
		path, err = l.installer.Ensure(ctx, desc, targetVersion)
		if err != nil {
			return Command{}, err
		}
		l.cache.Set(path)
	}

	// 5. Hand back the path plus the forwarded environment.
	return Command{Path: path, Env: forwardEnv(env)}, nil
}

// reusablePath revalidates the session cache against disk and the
// installed-version marker.
func (l *Launcher) reusablePath(targetVersion string) (string, bool) {
	cached, ok := l.cache.Get()
	if !ok {
		return "", false
	}
	if _, err := os.Stat(cached); err != nil {
		return "", false
	}
	installed, ok := l.store.InstalledVersion()
	if !ok || installed != targetVersion {
		return "", false
	}
	l.log.Debug("reusing cached adapter path", "path", cached, "version", targetVersion)
	return cached, true
}
