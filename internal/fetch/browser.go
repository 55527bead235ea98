package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chromedp/chromedp"
)

const (
	// MinContentLength is the fewest characters a static fetch must yield
	// before it is trusted. Shorter pages are usually rendered client-side.
	MinContentLength = 500
	// DefaultBrowserTimeout bounds a single headless render.
	DefaultBrowserTimeout = 30 * time.Second
)

// renderSettle gives client-side scripts time to fill the page after load.
const renderSettle = 3 * time.Second

// consentButtons matches common cookie-consent buttons that can cover the
// description.
const consentButtons = `button[id*="accept"], button[class*="accept"], button[aria-label*="Accept"]`

// ShouldUseBrowser reports whether statically extracted text is too short to
// trust.
func ShouldUseBrowser(extractedText string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(extractedText)) < MinContentLength
}

// WithBrowser renders url in headless Chrome and returns the resulting HTML.
// Chrome or Chromium must be installed on the host.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	if verbose {
		log.Printf("[browser] Rendering %s (timeout %v)", url, timeout)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions()...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	runCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var page string
	if err := chromedp.Run(runCtx, renderTasks(url, &page)); err != nil {
		return "", fmt.Errorf("browser rendering failed for %s: %w", url, err)
	}

	if verbose {
		log.Printf("[browser] Rendered %s: %d bytes", url, len(page))
	}
	return page, nil
}

func allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := make([]chromedp.ExecAllocatorOption, 0, len(chromedp.DefaultExecAllocatorOptions)+5)
	opts = append(opts, chromedp.DefaultExecAllocatorOptions[:]...)
	return append(opts,
		chromedp.Headless,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(DefaultUserAgent),
	)
}

// renderTasks loads url, dismisses a consent banner if one is visible, and
// captures the document's outer HTML into page.
func renderTasks(url string, page *string) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(renderSettle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// A missing banner is not an error.
			_ = chromedp.Click(consentButtons, chromedp.NodeVisible, chromedp.AtLeast(0)).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", page),
	}
}
