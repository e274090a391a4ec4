package browser

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/chromedp/chromedp"
)

// Options configures the Chrome session.
type Options struct {
	// ProfileDir persists cookies and local storage between runs so a
	// completed login survives restarts. Empty means a throwaway
	// profile.
	ProfileDir string

	// Headed disables headless mode. Needed when the user must clear a
	// security checkpoint by hand.
	Headed bool

	Verbose bool
}

// Chrome drives a real Chrome instance via the DevTools protocol.
// Requires Chrome/Chromium to be installed on the system.
type Chrome struct {
	ctx     context.Context
	cancels []context.CancelFunc
	verbose bool
}

// NewChrome starts a Chrome session. The returned driver must be
// closed; the session dies with the parent context as well.
func NewChrome(ctx context.Context, opts Options) (*Chrome, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !opts.Headed),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.ProfileDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.ProfileDir))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Start the browser process eagerly so a missing Chrome binary
	// surfaces here instead of on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &Chrome{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
		verbose: opts.Verbose,
	}, nil
}

// run executes actions on the browser context, bounded by ctx.
func (c *Chrome) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := mergeContexts(c.ctx, ctx)
	defer cancel()
	return chromedp.Run(runCtx, actions...)
}

// mergeContexts derives a child of the browser context that is also
// cancelled when the caller's context is.
func mergeContexts(browserCtx, callCtx context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(browserCtx)
	stop := context.AfterFunc(callCtx, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}

func (c *Chrome) Navigate(ctx context.Context, url string) error {
	if c.verbose {
		log.Printf("[BROWSER] Navigating to: %s", url)
	}
	return c.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	)
}

func (c *Chrome) CurrentURL(ctx context.Context) (string, error) {
	var url string
	err := c.run(ctx, chromedp.Location(&url))
	return url, err
}

func (c *Chrome) Reload(ctx context.Context) error {
	return c.run(ctx,
		chromedp.Reload(),
		chromedp.WaitReady("body"),
	)
}

func (c *Chrome) WaitVisible(ctx context.Context, selector string) error {
	return c.run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

func (c *Chrome) Exists(ctx context.Context, selector string) (bool, error) {
	var count int
	expr := fmt.Sprintf("document.querySelectorAll(%q).length", selector)
	if err := c.run(ctx, chromedp.Evaluate(expr, &count)); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c *Chrome) Click(ctx context.Context, selector string) error {
	return c.run(ctx, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible))
}

func (c *Chrome) Text(ctx context.Context, selector string) (string, error) {
	var text string
	err := c.run(ctx, chromedp.Text(selector, &text, chromedp.ByQuery))
	return text, err
}

func (c *Chrome) HTML(ctx context.Context, selector string) (string, error) {
	var html string
	err := c.run(ctx, chromedp.OuterHTML(selector, &html, chromedp.ByQuery))
	return html, err
}

func (c *Chrome) SendKeys(ctx context.Context, selector, value string) error {
	return c.run(ctx, chromedp.SendKeys(selector, value, chromedp.ByQuery))
}

func (c *Chrome) Clear(ctx context.Context, selector string) error {
	return c.run(ctx, chromedp.Clear(selector, chromedp.ByQuery))
}

func (c *Chrome) SetUpload(ctx context.Context, selector, path string) error {
	return c.run(ctx, chromedp.SetUploadFiles(selector, []string{path}, chromedp.ByQuery))
}

func (c *Chrome) Evaluate(ctx context.Context, expression string, out any) error {
	return c.run(ctx, chromedp.Evaluate(expression, out))
}

// ScrollSlow pages down the document with randomized pauses so lazily
// rendered lists fill in before scanning.
func (c *Chrome) ScrollSlow(ctx context.Context) error {
	for i := 0; i < 6; i++ {
		err := c.run(ctx, chromedp.Evaluate(`window.scrollBy(0, window.innerHeight); true`, nil))
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(scrollPause()):
		}
	}
	return nil
}

// scrollPause returns a pause between 1.0 and 2.6 seconds.
func scrollPause() time.Duration {
	return time.Duration(1000+rand.Intn(1600)) * time.Millisecond
}

func (c *Chrome) Close() error {
	for _, cancel := range c.cancels {
		cancel()
	}
	return nil
}
