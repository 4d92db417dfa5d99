package platform

import "fmt"

// UnsupportedError is returned when no release asset exists for the host
// (os, arch) pair. The remedy is building vulnera-adapter from source and
// pointing VULNERA_ADAPTER_PATH at the result.
type UnsupportedError struct {
	OS   string
	Arch string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf(
		"unsupported platform (%s/%s); build vulnera-adapter from source and set VULNERA_ADAPTER_PATH",
		e.OS, e.Arch)
}

// descriptors is the closed table of supported (os, arch) pairs.
var descriptors = map[[2]string]Descriptor{
	{"linux", "amd64"}: {
		TargetTriple: "x86_64-unknown-linux-gnu",
		AssetName:    "vulnera-adapter-x86_64-unknown-linux-gnu",
	},
	{"linux", "arm64"}: {
		TargetTriple: "aarch64-unknown-linux-gnu",
		AssetName:    "vulnera-adapter-aarch64-unknown-linux-gnu",
	},
	{"darwin", "amd64"}: {
		TargetTriple: "x86_64-apple-darwin",
		AssetName:    "vulnera-adapter-x86_64-apple-darwin",
	},
	{"darwin", "arm64"}: {
		TargetTriple: "aarch64-apple-darwin",
		AssetName:    "vulnera-adapter-aarch64-apple-darwin",
	},
	{"windows", "amd64"}: {
		TargetTriple: "x86_64-pc-windows-msvc",
		AssetName:    "vulnera-adapter-x86_64-pc-windows-msvc.exe",
		IsWindows:    true,
	},
}

// Resolve maps an (os, arch) pair to its release asset descriptor.
// The lookup is static; there is no fallback for unsupported pairs.
func Resolve(goos, goarch string) (Descriptor, error) {
	desc, ok := descriptors[[2]string{goos, goarch}]
	if !ok {
		return Descriptor{}, &UnsupportedError{OS: goos, Arch: goarch}
	}
	return desc, nil
}
