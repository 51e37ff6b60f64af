package utils

import (
	"context"
	"os"

	"github.com/chromedp/chromedp"
)

// BrowserOptions controls how the Chrome process is launched
type BrowserOptions struct {
	Headless  bool
	UserAgent string
	Locale    string // e.g. "fr-FR"; passed to Chrome as --lang
	Proxy     string // host:port; empty means direct
}

// NewBrowser starts one Chrome process and its first tab. The returned cancel
// tears down both.
func NewBrowser(parent context.Context, o BrowserOptions, logger *Logger) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", o.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("log-level", "3"),
		chromedp.UserAgent(o.UserAgent),
		chromedp.WindowSize(1366, 900),
	)
	if o.Locale != "" {
		opts = append(opts, chromedp.Flag("lang", o.Locale))
	}
	if o.Proxy != "" {
		opts = append(opts, chromedp.ProxyServer(o.Proxy))
	}
	if path := os.Getenv("CHROME_PATH"); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}),
		chromedp.WithErrorf(func(format string, args ...interface{}) {
			logger.Debug("chromedp: "+format, args...)
		}),
	)

	return ctx, func() {
		cancelCtx()
		cancelAlloc()
	}
}
