package valuecfg

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"
)

// IsRemote reports whether locator names an http(s) resource.
func IsRemote(locator string) bool {
	u, err := url.Parse(strings.TrimSpace(locator))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Load reads one locator: remote locators go through f, anything else is a
// file path. The result is decoded but not validated. A nil f uses
// NewFetcher().
func Load(ctx context.Context, locator string, f *Fetcher) (Config, error) {
	locator = strings.TrimSpace(locator)
	if IsRemote(locator) {
		if f == nil {
			f = NewFetcher()
		}
		return f.Fetch(ctx, locator)
	}
	return LoadFile(locator)
}

// LoadAll loads every locator concurrently, merges the kinds in locator
// order and validates the merged document. The first failure cancels the
// remaining loads.
func LoadAll(ctx context.Context, locators []string, f *Fetcher) (Config, error) {
	if f == nil {
		f = NewFetcher()
	}
	parts := make([]Config, len(locators))

	g, gctx := errgroup.WithContext(ctx)
	for i, loc := range locators {
		g.Go(func() error {
			cfg, err := Load(gctx, loc, f)
			if err != nil {
				return err
			}
			parts[i] = cfg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Config{}, err
	}
	return Validate(Merge(parts...))
}
