package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect returns the host platform information. OS and architecture come
// from runtime.GOOS and runtime.GOARCH; on Linux, gopsutil supplies distro
// details for diagnostics.
//
// If gopsutil fails to detect the distribution, the distro fields stay empty
// and detection still succeeds. Only context cancellation is a hard failure.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      runtime.GOOS,
		ArchRaw: runtime.GOARCH,
		Arch:    normalizeArch(runtime.GOARCH),
	}

	if runtime.GOOS == "linux" {
		distro, _, version, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
			// Distro details are informational only; keep OS/arch.
			return info, nil
		}
		info.Distro = normalize(distro)
		info.Version = normalize(version)
	}

	return info, nil
}

// normalizeArch maps alternate architecture spellings to GOARCH names.
// Unrecognized values pass through untouched so that Resolve reports them
// verbatim in its error.
func normalizeArch(arch string) string {
	switch arch {
	case "x86_64":
		return "amd64"
	case "aarch64":
		return "arm64"
	default:
		return arch
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
