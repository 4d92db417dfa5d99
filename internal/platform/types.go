// Package platform maps the host operating system and CPU architecture to
// the release asset published for it.
//
// Detection uses runtime.GOOS and runtime.GOARCH, enriched with Linux
// distribution details from gopsutil for diagnostics. Resolution is a static
// lookup over the closed set of supported (os, arch) pairs; unsupported
// pairs produce a typed error that names the manual escape hatch.
package platform

import "context"

// Info contains detected host platform information.
type Info struct {
	OS      string // "linux", "darwin", "windows"
	Arch    string // "amd64", "arm64" (normalized)
	ArchRaw string // original GOARCH value before normalization
	Distro  string // distro ID (Linux only, e.g., "ubuntu")
	Version string // distro version (Linux only, e.g., "22.04")
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// Descriptor describes the release asset for one supported (os, arch) pair.
type Descriptor struct {
	// TargetTriple is the canonical target identifier, e.g.
	// "x86_64-unknown-linux-gnu".
	TargetTriple string
	// AssetName is the full filename of the release asset on the
	// GitHub release page.
	AssetName string
	// IsWindows reports whether the executable is a native Windows
	// binary (carries an .exe suffix and needs no executable bit).
	IsWindows bool
}

// Detector is the interface for host platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
