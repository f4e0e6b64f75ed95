package civilview

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/chromedp/chromedp"

	"foreclosure-scraper/config"
	"foreclosure-scraper/storage"
	"foreclosure-scraper/utils"
)

// Selectors for the sale site's search and detail pages.
const (
	cityDropdownSelector = `select[name="CityDesc"]`
	searchButtonSelector = `.btn-primary`
	resultsTableSelector = `table.table-striped`
	detailsLinkText      = "Details"
)

// Scraper drives a headless browser session against the county sale site and
// produces the raw detail-page HTML for every current listing, consulting the
// file cache before hitting the network.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	cache  *storage.HTMLCache
	seen   *utils.IDSet
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger, cache *storage.HTMLCache) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		cache:  cache,
		seen:   utils.NewIDSet(),
	}
}

// FetchAll runs one full fetch pass: search for the target city, collect
// every details link, and return the HTML of each listing's detail page.
// The browser session lives exactly as long as this call; the deferred
// cancels terminate it on every exit path. Fetching is strictly sequential,
// since the site interaction model is a single stateful browser session.
func (s *Scraper) FetchAll() ([]string, error) {
	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[civilview] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	ctx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancel()

	links, err := s.collectDetailLinks(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("[civilview] Found %d details links", len(links))

	var pages []string
	for _, href := range links {
		id := listingID(href)
		if !s.seen.Add(id) {
			s.logger.Debug("[civilview] Skipping duplicate listing: %s", id)
			continue
		}

		if html, ok := s.cache.Read(id); ok {
			pages = append(pages, html)
			continue
		}

		html, err := s.fetchDetail(ctx, href)
		if err != nil {
			// one bad listing does not abort the run
			s.logger.Error("[civilview] Failed to fetch details from %s: %v", href, err)
			continue
		}
		_ = s.cache.Write(id, html)
		pages = append(pages, html)
	}

	return pages, nil
}

// collectDetailLinks loads the search page, selects the target city, submits
// the search, and returns every "Details" hyperlink target on the results
// page.
func (s *Scraper) collectDetailLinks(ctx context.Context) ([]string, error) {
	if err := chromedp.Run(ctx, chromedp.Navigate(s.cfg.SearchURL)); err != nil {
		return nil, fmt.Errorf("civilview: load search page: %w", err)
	}

	if err := s.waitFor(ctx, cityDropdownSelector); err != nil {
		return nil, fmt.Errorf("civilview: city dropdown never appeared: %w", err)
	}

	var selected bool
	selectCity := fmt.Sprintf(`
		(function() {
			var sel = document.querySelector(%q);
			if (!sel) return false;
			for (var i = 0; i < sel.options.length; i++) {
				if (sel.options[i].text.trim() === %q) {
					sel.selectedIndex = i;
					sel.dispatchEvent(new Event('change', { bubbles: true }));
					return true;
				}
			}
			return false;
		})()
	`, cityDropdownSelector, s.cfg.TargetCity)

	if err := chromedp.Run(ctx, chromedp.Evaluate(selectCity, &selected)); err != nil {
		return nil, fmt.Errorf("civilview: select city: %w", err)
	}
	if !selected {
		return nil, fmt.Errorf("civilview: city %q not found in dropdown", s.cfg.TargetCity)
	}

	if err := chromedp.Run(ctx, chromedp.Click(searchButtonSelector, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("civilview: click search button: %w", err)
	}

	if err := s.waitFor(ctx, resultsTableSelector); err != nil {
		return nil, fmt.Errorf("civilview: results table never appeared: %w", err)
	}

	var links []string
	collect := fmt.Sprintf(`
		Array.from(document.querySelectorAll('a'))
			.filter(function(a) { return a.textContent.trim() === %q; })
			.map(function(a) { return a.href; })
	`, detailsLinkText)

	if err := chromedp.Run(ctx, chromedp.Evaluate(collect, &links)); err != nil {
		return nil, fmt.Errorf("civilview: collect details links: %w", err)
	}

	return links, nil
}

// fetchDetail navigates to one listing's page and captures the rendered HTML.
func (s *Scraper) fetchDetail(ctx context.Context, href string) (string, error) {
	if err := chromedp.Run(ctx, chromedp.Navigate(href)); err != nil {
		return "", fmt.Errorf("navigate: %w", err)
	}

	if err := s.waitFor(ctx, resultsTableSelector); err != nil {
		return "", fmt.Errorf("details table never appeared: %w", err)
	}

	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("capture page: %w", err)
	}
	return html, nil
}

// waitFor blocks until the selector is present or the configured wait
// timeout elapses. The timeout cancels only this wait, not the session.
func (s *Scraper) waitFor(ctx context.Context, selector string) error {
	wctx, cancel := context.WithTimeout(ctx, s.cfg.WaitTimeout)
	defer cancel()
	return chromedp.Run(wctx, chromedp.WaitReady(selector, chromedp.ByQuery))
}

// listingID derives the cache/de-duplication key from a details-link URL:
// the substring after the last '='.
func listingID(href string) string {
	i := strings.LastIndex(href, "=")
	if i < 0 {
		return href
	}
	return href[i+1:]
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the
// configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
