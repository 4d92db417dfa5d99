package main

import (
	"github.com/vulnera-rs/vulnera-launcher/internal/config"
	"github.com/vulnera-rs/vulnera-launcher/internal/installer"
	"github.com/vulnera-rs/vulnera-launcher/internal/launcher"
	"github.com/vulnera-rs/vulnera-launcher/internal/logging"
	"github.com/vulnera-rs/vulnera-launcher/internal/release"
	"github.com/vulnera-rs/vulnera-launcher/internal/state"
	"github.com/vulnera-rs/vulnera-launcher/internal/version"
)

// app bundles the wired components behind each subcommand.
type app struct {
	cfg       *config.Config
	log       logging.Logger
	store     *state.Store
	resolver  *version.Resolver
	installer *installer.Installer
	launcher  *launcher.Launcher
}

// newApp loads configuration and wires the launcher pipeline.
func newApp() (*app, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFilePath: flagConfig,
		Root:           flagRoot,
	})
	if err != nil {
		return nil, err
	}

	log := logging.New(flagDebug)
	store := state.NewStore(cfg.ServerDir(), nil, log)

	source := release.NewSource(nil, cfg.APIBaseURL, cfg.Repo, log)
	resolver := version.New(version.Config{
		Store:  store,
		Source: source,
		TTL:    cfg.CacheTTL,
		Logger: log,
	})

	inst, err := installer.New(installer.Config{
		Store:        store,
		DownloadBase: cfg.DownloadBaseURL,
		Repo:         cfg.Repo,
		LockInstalls: cfg.LockInstalls,
		Logger:       log,
	})
	if err != nil {
		return nil, err
	}

	l, err := launcher.New(launcher.Config{
		Resolver:  resolver,
		Installer: inst,
		Store:     store,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		log:       log,
		store:     store,
		resolver:  resolver,
		installer: inst,
		launcher:  l,
	}, nil
}
