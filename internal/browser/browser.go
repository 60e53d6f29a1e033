// Package browser acquires rendered DOM snapshots using headless Chrome.
//
// It is the external collaborator of the extraction pipeline: navigation,
// truncation expansion, article-view discovery, lazy-load scrolling and
// image measurement all happen here, against the live page. The pipeline
// itself never talks to the browser.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"

	"github.com/jmylchreest/xmark/internal/logger"
	"github.com/jmylchreest/xmark/internal/page"
)

// ErrSnapshotUnavailable indicates the browser could not deliver a DOM
// snapshot at all (navigation failure, timeout). Partial page content is
// never reported through this error.
var ErrSnapshotUnavailable = errors.New("no DOM snapshot available")

// Config holds configuration for the snapshot fetcher.
type Config struct {
	UserAgent   string
	Timeout     time.Duration
	ShowBrowser bool // run with a visible browser window
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent: defaultUserAgent,
		Timeout:   30 * time.Second,
	}
}

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// settleWait is the pause after navigation before touching the page.
const settleWait = 2 * time.Second

// Fetcher owns a browser allocator and produces one Snapshot per Fetch.
type Fetcher struct {
	config    Config
	allocCtx  context.Context
	cancelCtx context.CancelFunc
}

// NewFetcher creates a snapshot fetcher with a browser allocator.
func NewFetcher(cfg Config) (*Fetcher, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !cfg.ShowBrowser),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1280, 720),
	)

	// chromedp's default lookup may miss the installed binary
	if chromePath := FindChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	opts = append(opts, chromedp.UserAgent(cfg.UserAgent))

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	logger.Debug("snapshot fetcher created",
		"user_agent", cfg.UserAgent,
		"timeout", cfg.Timeout,
		"headless", !cfg.ShowBrowser)

	return &Fetcher{
		config:    cfg,
		allocCtx:  allocCtx,
		cancelCtx: cancelAlloc,
	}, nil
}

// Fetch navigates to targetURL, expands truncated text, follows the article
// view when one is offered, scrolls to trigger lazy loading, measures every
// image and captures the resulting DOM as a Snapshot.
//
// The whole sequence runs under the configured timeout; on any browser
// failure the returned error wraps ErrSnapshotUnavailable. No retries.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (*page.Snapshot, error) {
	logger.Debug("fetch starting", "url", targetURL)

	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			logger.Debug("chromedp", "msg", fmt.Sprintf(format, args...))
		}),
	)
	defer cancelBrowser()

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, f.config.Timeout)
	defer cancelTimeout()

	// Propagate caller cancellation (e.g. SIGINT) into the browser run.
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	var (
		currentURL  string
		articleHref string
	)

	err := chromedp.Run(timeoutCtx,
		emulation.SetDeviceMetricsOverride(1280, 720, 1.0, false),
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settleWait),
		expandTruncated(),
		chromedp.Location(&currentURL),
		articleLink(&articleHref),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotUnavailable, err)
	}

	// X renders long posts in a dedicated article view; prefer it when the
	// page links to one.
	if articleHref != "" && articleHref != currentURL {
		logger.Info("opening article view", "url", articleHref)
		err = chromedp.Run(timeoutCtx,
			chromedp.Navigate(articleHref),
			chromedp.WaitReady("body"),
			chromedp.Sleep(settleWait),
			expandTruncated(),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSnapshotUnavailable, err)
		}
	} else {
		logger.Debug("no article link found, continuing with current view")
	}

	var (
		html string
		dims map[string]page.Dim
	)

	actions := scrollToLoad()
	actions = append(actions,
		expandTruncated(),
		measureImages(&dims),
		chromedp.OuterHTML("html", &html),
	)
	if err := chromedp.Run(timeoutCtx, actions...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotUnavailable, err)
	}

	logger.Debug("fetch complete",
		"url", targetURL,
		"html_size", len(html),
		"images_measured", len(dims))

	snap, err := page.FromHTML(targetURL, html, dims)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotUnavailable, err)
	}
	return snap, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	if f.cancelCtx != nil {
		f.cancelCtx()
	}
	return nil
}

// Common Chrome/Chromium binary names across different systems
var chromeBinaryNames = []string{
	"google-chrome-stable",
	"google-chrome",
	"chromium",
	"chromium-browser",
	"chrome",
	// macOS paths
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
	// Common Linux paths
	"/usr/bin/google-chrome-stable",
	"/usr/bin/google-chrome",
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/snap/bin/chromium",
	// Windows paths
	`C:\Program Files\Google\Chrome\Application\chrome.exe`,
	`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
}

// FindChromePath searches for a Chrome/Chromium binary on the system.
// It first tries PATH lookup, then checks common installation locations.
// Returns empty string if no Chrome binary is found.
func FindChromePath() string {
	for _, name := range chromeBinaryNames {
		if path, err := exec.LookPath(name); err == nil {
			logger.Debug("found Chrome binary", "name", name, "path", path)
			return path
		}
	}
	logger.Warn("no Chrome binary found - snapshot capture may not work")
	return ""
}
