// vulnera-launcher provisions the vulnera-adapter language-server binary for
// a host application: it resolves which version should be running, installs
// it when missing or outdated, and reports the executable path plus the
// environment to forward to the spawned process.
package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
