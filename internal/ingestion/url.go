package ingestion

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/job-matcher/internal/fetch"
)

// PageFetcher retrieves raw HTML. *fetch.CachedFetcher implements it.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.CachedResult, error)
}

// RenderFunc renders a page in a browser and returns its HTML.
type RenderFunc func(ctx context.Context, url string) (string, error)

// JobPosting is the cleaned text of a job posting fetched from the web.
type JobPosting struct {
	Text     string
	Metadata *Metadata
}

// JobFetcher fetches job postings and reduces them to their description text.
type JobFetcher struct {
	pages   PageFetcher
	render  RenderFunc
	verbose bool
}

// JobFetcherOption configures a JobFetcher.
type JobFetcherOption func(*JobFetcher)

// WithBrowserFallback renders pages whose static text is too short with render.
func WithBrowserFallback(render RenderFunc) JobFetcherOption {
	return func(f *JobFetcher) {
		f.render = render
	}
}

// WithVerbose logs each step of the extraction.
func WithVerbose(verbose bool) JobFetcherOption {
	return func(f *JobFetcher) {
		f.verbose = verbose
	}
}

// HeadlessRender is a RenderFunc backed by headless Chrome.
func HeadlessRender(timeout time.Duration) RenderFunc {
	return func(ctx context.Context, url string) (string, error) {
		return fetch.WithBrowser(ctx, url, timeout, false)
	}
}

// NewJobFetcher creates a JobFetcher reading pages through pages.
func NewJobFetcher(pages PageFetcher, opts ...JobFetcherOption) *JobFetcher {
	f := &JobFetcher{pages: pages}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchJobText fetches urlStr and extracts the job description using
// platform-specific selectors. When a browser fallback is configured and the
// static page yields too little text, the page is rendered and re-extracted;
// a failed render keeps the static text.
func (f *JobFetcher) FetchJobText(ctx context.Context, urlStr string) (*JobPosting, error) {
	platform := fetch.DetectPlatform(urlStr)
	f.logf("URL: %s (platform: %s)", urlStr, platform)

	result, err := f.pages.Fetch(ctx, urlStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	f.logf("Fetched HTML: %d bytes (cached: %t)", len(result.HTML), result.FromCache)

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	f.logf("Extracted text: %d chars", len(text))

	rendered := false
	if f.render != nil && fetch.ShouldUseBrowser(text) {
		f.logf("Content too short (%d chars < %d), rendering in browser", len(text), fetch.MinContentLength)
		html, renderErr := f.render(ctx, urlStr)
		if renderErr != nil {
			log.Printf("[ingest] Browser rendering failed for %s: %v; using static content", urlStr, renderErr)
		} else if renderedText, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...); err == nil {
			text, rendered = renderedText, true
			f.logf("Browser extracted text: %d chars", len(text))
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: page has no job description text", ErrContentExtractionFailed)
	}

	metadata := NewMetadata(cleaned, urlStr)
	metadata.Platform = string(platform)
	metadata.Rendered = rendered
	metadata.FromCache = result.FromCache

	return &JobPosting{Text: cleaned, Metadata: metadata}, nil
}

func (f *JobFetcher) logf(format string, args ...any) {
	if f.verbose {
		log.Printf("[ingest] "+format, args...)
	}
}
