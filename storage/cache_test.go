package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"foreclosure-scraper/utils"
)

func newTestCache(t *testing.T, expiry time.Duration) (*HTMLCache, string) {
	t.Helper()
	dir := t.TempDir()
	c, err := NewHTMLCache(dir, expiry, utils.NewLogger())
	if err != nil {
		t.Fatalf("NewHTMLCache: %v", err)
	}
	return c, dir
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, 24*time.Hour)

	const html = "<html><body>listing 832</body></html>"
	if err := c.Write("832", html); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, ok := c.Read("832")
	if !ok {
		t.Fatal("Read: expected hit within expiry window")
	}
	if got != html {
		t.Errorf("Read: got %q, want %q", got, html)
	}
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(t, 24*time.Hour)

	if _, ok := c.Read("nonexistent"); ok {
		t.Error("Read: expected miss for unknown identifier")
	}
}

func TestCacheExpiry(t *testing.T) {
	c, dir := newTestCache(t, 24*time.Hour)

	if err := c.Write("832", "stale"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	// force the entry past the expiry window
	old := time.Now().Add(-25 * time.Hour)
	if err := os.Chtimes(filepath.Join(dir, "832.html"), old, old); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	if _, ok := c.Read("832"); ok {
		t.Error("Read: expected miss for expired entry")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c, _ := newTestCache(t, 24*time.Hour)

	if err := c.Write("832", "first"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := c.Write("832", "second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, ok := c.Read("832")
	if !ok || got != "second" {
		t.Errorf("Read after overwrite: got %q ok=%v, want %q", got, ok, "second")
	}
}

func TestCacheCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	if _, err := NewHTMLCache(dir, time.Hour, utils.NewLogger()); err != nil {
		t.Fatalf("NewHTMLCache: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache directory not created: %v", err)
	}
}
