// Package release queries the GitHub releases listing for the newest stable
// vulnera-adapter version.
//
// Absence of a result is an expected, recoverable outcome: transport
// failures, non-success statuses, and malformed bodies all report "no
// version" rather than an error, and the resolver one layer up falls back to
// its cache or floor.
package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vulnera-rs/vulnera-launcher/internal/logging"
)

const (
	// DefaultBaseURL is the GitHub API root for release listings.
	DefaultBaseURL = "https://api.github.com"
	// DefaultTimeout bounds the single listing request.
	DefaultTimeout = 30 * time.Second
	// userAgent identifies the launcher to the releases endpoint.
	userAgent = "vulnera-launcher"

	// maxBodyBytes caps how much of the listing body is read. The listing
	// is paginated at 30 entries, far below this limit.
	maxBodyBytes = 4 << 20
)

// Source fetches the latest stable adapter version from a releases-listing
// endpoint.
type Source struct {
	client  *http.Client
	baseURL string
	repo    string
	log     logging.Logger
}

// NewSource creates a source for the given repository slug (e.g.
// "vulnera-rs/adapter"). A nil client defaults to one with DefaultTimeout;
// redirects are followed by default. A nil logger discards output.
func NewSource(client *http.Client, baseURL, repo string, log logging.Logger) *Source {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Source{client: client, baseURL: baseURL, repo: repo, log: log}
}

// LatestStable issues one GET to the releases listing and returns the newest
// non-draft, non-prerelease adapter version, or false if no version could be
// determined. It never returns an error: every failure mode is absorbed and
// logged.
func (s *Source) LatestStable(ctx context.Context) (string, bool) {
	url := fmt.Sprintf("%s/repos/%s/releases", s.baseURL, s.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.log.Warn("building releases request failed", "url", url, "error", err)
		return "", false
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("releases request failed", "url", url, "error", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Warn("releases request returned non-success status", "url", url, "status", resp.Status)
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		s.log.Warn("reading releases response failed", "url", url, "error", err)
		return "", false
	}

	// Guard against HTML error pages (non-JSON responses).
	text := string(body)
	if !strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), "[") {
		s.log.Warn("releases response is not a JSON array", "url", url)
		return "", false
	}

	version, ok := parseLatestStable(text)
	if !ok {
		s.log.Warn("no stable adapter release found in listing", "url", url)
		return "", false
	}

	s.log.Debug("latest stable adapter release", "version", version)
	return version, true
}
