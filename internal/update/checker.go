package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"segbox/internal/debug"
	appErrors "segbox/internal/errors"
)

const (
	DefaultAPI     = "https://api.github.com"
	DefaultTimeout = 5 * time.Second
)

// Release is the subset of the releases API response segbox reads.
type Release struct {
	TagName     string    `json:"tag_name"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
	Prerelease  bool      `json:"prerelease"`
}

// Status is the outcome of a check. Dev reports that the running build has
// no comparable version; Latest is still filled in.
type Status struct {
	Current Version
	Latest  Version
	Newer   bool
	Dev     bool
	URL     string
}

// Checker queries the latest release of one repository.
type Checker struct {
	repo    string
	api     string
	client  *http.Client
	timeout time.Duration
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithAPI points the checker at another API root, such as a test server.
func WithAPI(api string) CheckerOption {
	return func(c *Checker) {
		if api != "" {
			c.api = strings.TrimRight(api, "/")
		}
	}
}

func WithHTTPClient(client *http.Client) CheckerOption {
	return func(c *Checker) {
		if client != nil {
			c.client = client
		}
	}
}

func WithTimeout(timeout time.Duration) CheckerOption {
	return func(c *Checker) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewChecker creates a checker for repo given as "owner/name".
func NewChecker(repo string, opts ...CheckerOption) *Checker {
	c := &Checker{
		repo:    strings.Trim(repo, "/"),
		api:     DefaultAPI,
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Latest fetches the newest published release.
func (c *Checker) Latest(ctx context.Context) (Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.api, c.repo)
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Release{}, appErrors.New(appErrors.CodeReleaseCheck, "build release request", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "segbox-release-check")

	debug.FromContext(ctx).V(1).Info("checking latest release", "url", url)
	resp, err := c.client.Do(req)
	if err != nil {
		return Release{}, appErrors.New(appErrors.CodeReleaseCheck, "query releases", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusTooManyRequests:
		return Release{}, appErrors.New(appErrors.CodeReleaseCheck, "release API rate limit reached", nil)
	default:
		return Release{}, appErrors.New(appErrors.CodeReleaseCheck,
			fmt.Sprintf("query releases: unexpected status %d", resp.StatusCode), nil)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return Release{}, appErrors.New(appErrors.CodeReleaseCheck, "decode release", err)
	}
	return rel, nil
}

// Check compares current against the latest release.
func (c *Checker) Check(ctx context.Context, current string) (Status, error) {
	rel, err := c.Latest(ctx)
	if err != nil {
		return Status{}, err
	}
	latest, err := ParseVersion(rel.TagName)
	if err != nil {
		return Status{}, appErrors.New(appErrors.CodeReleaseCheck, "parse latest release tag", err)
	}

	status := Status{Latest: latest, URL: rel.HTMLURL}
	cur, err := ParseVersion(current)
	if err != nil {
		status.Dev = true
		return status, nil
	}
	status.Current = cur
	status.Newer = cur.LessThan(latest)
	return status, nil
}
