package launcher

// PathCache remembers the adapter path from the last successful resolution
// so later passes can skip the installer. The cache is owned by the caller
// and handed to the launcher explicitly. It is never trusted blindly: the
// launcher revalidates the installed-version marker before reuse.
//
// The zero value is an empty cache. PathCache is not safe for concurrent
// use; the launcher assumes one logical caller per install target.
type PathCache struct {
	path string
}

// Get returns the cached path, if any.
func (c *PathCache) Get() (string, bool) {
	if c == nil || c.path == "" {
		return "", false
	}
	return c.path, true
}

// Set records a freshly resolved path.
func (c *PathCache) Set(path string) {
	if c != nil {
		c.path = path
	}
}

// Invalidate clears the cached path.
func (c *PathCache) Invalidate() {
	if c != nil {
		c.path = ""
	}
}
