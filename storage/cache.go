package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"foreclosure-scraper/utils"
)

// HTMLCache is a file-backed, time-expiring store of raw detail-page HTML,
// one file per listing identifier.
type HTMLCache struct {
	dir    string
	expiry time.Duration
	logger *utils.Logger
}

// NewHTMLCache creates the cache directory if needed and returns a ready
// cache. A directory that cannot be created (permissions, etc.) is a hard
// error.
func NewHTMLCache(dir string, expiry time.Duration, logger *utils.Logger) (*HTMLCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cache: create dir %q: %w", dir, err)
	}
	return &HTMLCache{dir: dir, expiry: expiry, logger: logger}, nil
}

func (c *HTMLCache) path(id string) string {
	return filepath.Join(c.dir, id+".html")
}

// Read returns the cached HTML for a listing identifier. The second return
// value is false when no entry exists, the entry has expired, or the file
// cannot be read; the caller then fetches fresh.
func (c *HTMLCache) Read(id string) (string, bool) {
	p := c.path(id)

	info, err := os.Stat(p)
	if err != nil {
		return "", false
	}
	if time.Since(info.ModTime()) >= c.expiry {
		c.logger.Debug("[cache] Entry expired: %s", p)
		return "", false
	}

	data, err := os.ReadFile(p)
	if err != nil {
		c.logger.Warn("[cache] Failed to read %s: %v", p, err)
		return "", false
	}

	c.logger.Info("[cache] Read HTML from cache: %s", p)
	return string(data), true
}

// Write stores the HTML for a listing identifier, overwriting any existing
// entry. Write failures are logged and returned, but callers treat them as
// non-fatal: the fetched HTML is still usable for this run.
func (c *HTMLCache) Write(id, html string) error {
	p := c.path(id)
	if err := os.WriteFile(p, []byte(html), 0644); err != nil {
		c.logger.Warn("[cache] Failed to write %s: %v", p, err)
		return fmt.Errorf("cache: write %q: %w", p, err)
	}
	c.logger.Info("[cache] Cached HTML to: %s", p)
	return nil
}
