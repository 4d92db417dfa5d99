// Package config loads launcher settings: where the adapter is installed,
// which repository publishes it, and how long the version cache stays fresh.
//
// Settings come from defaults, an optional YAML config file, and
// VULNERA_LAUNCHER_* environment variables, in increasing precedence. The
// per-resolution overrides (VULNERA_ADAPTER_PATH, VULNERA_ADAPTER_VERSION)
// are not settings; they live in the caller's shell environment snapshot.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vulnera-rs/vulnera-launcher/internal/release"
	"github.com/vulnera-rs/vulnera-launcher/internal/version"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "vulnera-launcher"

	// DefaultRepo is the GitHub repository publishing adapter-v* releases.
	DefaultRepo = "vulnera-rs/adapter"

	// serverDirName is the subdirectory holding the installed binary and
	// its state records.
	serverDirName = "server"
)

// Config holds the launcher's settings.
type Config struct {
	// Root is the launcher's state root; the binary and records live in
	// its "server" subdirectory.
	Root string `mapstructure:"root"`
	// Repo is the GitHub repository slug publishing adapter releases.
	Repo string `mapstructure:"repo"`
	// APIBaseURL is the releases-listing API root.
	APIBaseURL string `mapstructure:"api_base_url"`
	// DownloadBaseURL is the root URL release assets are served from.
	DownloadBaseURL string `mapstructure:"download_base_url"`
	// CacheTTL is how long a cached latest-version stays fresh.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// LockInstalls enables the cross-process install lock.
	LockInstalls bool `mapstructure:"lock_installs"`
}

// ServerDir returns the directory holding the binary and state records.
func (c *Config) ServerDir() string {
	return filepath.Join(c.Root, serverDirName)
}

// DefaultRoot returns the platform config directory for the launcher,
// e.g. ~/.config/vulnera-launcher on Linux.
func DefaultRoot() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// Root overrides the state root when set.
	Root string
}

// Load builds the effective configuration from defaults, the optional
// config file, and VULNERA_LAUNCHER_* environment variables.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("repo", DefaultRepo)
	v.SetDefault("api_base_url", release.DefaultBaseURL)
	v.SetDefault("download_base_url", "https://github.com")
	v.SetDefault("cache_ttl", version.DefaultTTL)
	v.SetDefault("lock_installs", false)

	defaultRoot, err := DefaultRoot()
	if err == nil {
		v.SetDefault("root", defaultRoot)
	}

	v.SetEnvPrefix("VULNERA_LAUNCHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFilePath != "" {
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", opts.ConfigFilePath, err)
		}
	} else if defaultRoot != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultRoot)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	if cfg.Root == "" {
		return nil, fmt.Errorf("no state root configured and no user config dir available")
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = version.DefaultTTL
	}

	return &cfg, nil
}
