// Package installer keeps the local vulnera-adapter executable in sync with
// a target version.
//
// An install pass is needed exactly when the executable is missing or the
// installed-version marker disagrees with the target; otherwise Ensure is a
// no-op that returns the existing path. Installs download the release asset
// for the host platform, make it executable, and record the new marker.
// Ensure is idempotent and safe to call on every resolution pass.
package installer

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/vulnera-rs/vulnera-launcher/internal/logging"
	"github.com/vulnera-rs/vulnera-launcher/internal/platform"
	"github.com/vulnera-rs/vulnera-launcher/internal/state"
)

const (
	// DefaultDownloadBase is the root URL release assets are served from.
	DefaultDownloadBase = "https://github.com"

	binaryName = "vulnera-adapter"
)

// InstallError is a fatal installation failure, carrying the attempted URL
// and destination path so the host can surface a user-actionable message.
type InstallError struct {
	URL  string
	Path string
	Err  error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install vulnera-adapter (url=%s path=%s): %v", e.URL, e.Path, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// Installer downloads and installs the adapter executable.
type Installer struct {
	store        *state.Store
	downloader   *Downloader
	downloadBase string
	repo         string
	dir          string
	lockInstalls bool
	log          logging.Logger
}

// Config holds the installer's collaborators. Store is required; Dir
// defaults to the store's directory.
type Config struct {
	Store *state.Store
	// Client is the HTTP client used for downloads; nil gets a default.
	Client *http.Client
	// DownloadBase defaults to DefaultDownloadBase.
	DownloadBase string
	// Repo is the GitHub repository slug publishing adapter releases,
	// e.g. "vulnera-rs/adapter".
	Repo string
	// Dir is the install directory; defaults to Store.Dir().
	Dir string
	// LockInstalls guards the check-then-install sequence with a
	// cross-process file lock. Off by default.
	LockInstalls bool
	Logger       logging.Logger
}

// New creates an installer from cfg.
func New(cfg Config) (*Installer, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("Store is required")
	}
	if cfg.Repo == "" {
		return nil, fmt.Errorf("Repo is required")
	}
	if cfg.DownloadBase == "" {
		cfg.DownloadBase = DefaultDownloadBase
	}
	if cfg.Dir == "" {
		cfg.Dir = cfg.Store.Dir()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	return &Installer{
		store:        cfg.Store,
		downloader:   NewDownloader(cfg.Client),
		downloadBase: cfg.DownloadBase,
		repo:         cfg.Repo,
		dir:          cfg.Dir,
		lockInstalls: cfg.LockInstalls,
		log:          cfg.Logger,
	}, nil
}

// BinaryPath returns the deterministic local executable path for desc.
func (i *Installer) BinaryPath(desc platform.Descriptor) string {
	name := binaryName
	if desc.IsWindows {
		name += ".exe"
	}
	return filepath.Join(i.dir, name)
}

// DownloadURL returns the release asset URL for desc at version.
func (i *Installer) DownloadURL(desc platform.Descriptor, version string) string {
	return fmt.Sprintf("%s/%s/releases/download/adapter-v%s/%s",
		i.downloadBase, i.repo, version, desc.AssetName)
}

// Ensure makes the local executable match targetVersion and returns its
// path. Failures are returned as *InstallError; there is no automatic
// retry.
func (i *Installer) Ensure(ctx context.Context, desc platform.Descriptor, targetVersion string) (string, error) {
	if i.lockInstalls {
		lock, err := acquireLock(i.dir)
		if err != nil {
			return "", &InstallError{Path: i.dir, Err: err}
		}
		defer lock.release()
	}

	dest := i.BinaryPath(desc)

	installed, hasMarker := i.store.InstalledVersion()
	binaryExists := fileExists(dest)

	if binaryExists && hasMarker && installed == targetVersion {
		i.log.Debug("adapter already installed", "version", targetVersion, "path", dest)
		return dest, nil
	}

	if err := i.install(ctx, desc, targetVersion, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func (i *Installer) install(ctx context.Context, desc platform.Descriptor, version, dest string) error {
	url := i.DownloadURL(desc, version)

	if err := os.MkdirAll(i.dir, 0o755); err != nil {
		return &InstallError{URL: url, Path: dest, Err: fmt.Errorf("create install dir: %w", err)}
	}

	i.log.Info("downloading vulnera-adapter",
		"version", version, "target", desc.TargetTriple, "url", url)

	if err := i.downloader.DownloadToFile(ctx, url, dest); err != nil {
		return &InstallError{URL: url, Path: dest, Err: err}
	}

	if !desc.IsWindows {
		if err := setExecutable(dest); err != nil {
			return &InstallError{URL: url, Path: dest, Err: fmt.Errorf("mark executable: %w", err)}
		}
	}

	i.store.WriteInstalledVersion(version)

	i.log.Info("vulnera-adapter installed", "version", version, "path", dest)
	return nil
}

// setExecutable marks path executable for owner, group, and other.
func setExecutable(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, 0o755)
}

// fileExists checks if a file exists and is not empty.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}
