package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathan/job-matcher/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobPageHTML = `<!DOCTYPE html>
<html>
<body>
<nav>Navigation</nav>
<main>
<h1>Senior Software Engineer</h1>
<h2>Requirements</h2>
<p>Go, Kubernetes and PostgreSQL</p>
<form id="application-form">Upload your resume</form>
</main>
<footer>Footer</footer>
</body>
</html>`

func serveHTML(t *testing.T, status int, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchJobText_Success(t *testing.T) {
	server := serveHTML(t, http.StatusOK, jobPageHTML)
	fetcher := NewJobFetcher(fetch.NewCachedFetcher(nil))

	posting, err := fetcher.FetchJobText(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Contains(t, posting.Text, "Senior Software Engineer")
	assert.Contains(t, posting.Text, "Go, Kubernetes and PostgreSQL")
	assert.NotContains(t, posting.Text, "Navigation")
	assert.NotContains(t, posting.Text, "Footer")
	assert.NotContains(t, posting.Text, "Upload your resume")

	require.NotNil(t, posting.Metadata)
	assert.Equal(t, server.URL, posting.Metadata.URL)
	assert.Equal(t, string(fetch.PlatformUnknown), posting.Metadata.Platform)
	assert.Equal(t, computeHash(posting.Text), posting.Metadata.Hash)
	assert.False(t, posting.Metadata.Rendered)
	assert.False(t, posting.Metadata.FromCache)
}

func TestFetchJobText_SecondFetchIsCached(t *testing.T) {
	server := serveHTML(t, http.StatusOK, jobPageHTML)
	fetcher := NewJobFetcher(fetch.NewCachedFetcher(nil))

	_, err := fetcher.FetchJobText(context.Background(), server.URL)
	require.NoError(t, err)
	posting, err := fetcher.FetchJobText(context.Background(), server.URL)
	require.NoError(t, err)

	assert.True(t, posting.Metadata.FromCache)
}

func TestFetchJobText_InvalidURL(t *testing.T) {
	fetcher := NewJobFetcher(fetch.NewCachedFetcher(nil))

	for _, urlStr := range []string{"", "not-a-url", "ftp://example.com/job", "http://"} {
		t.Run(urlStr, func(t *testing.T) {
			_, err := fetcher.FetchJobText(context.Background(), urlStr)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrHTTPRequestFailed)
		})
	}
}

func TestFetchJobText_HTTPError(t *testing.T) {
	server := serveHTML(t, http.StatusNotFound, "missing")
	fetcher := NewJobFetcher(fetch.NewCachedFetcher(nil))

	_, err := fetcher.FetchJobText(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)

	var fetchErr *fetch.Error
	require.True(t, errors.As(err, &fetchErr))
	assert.False(t, fetchErr.Retryable)
}

func TestFetchJobText_EmptyPage(t *testing.T) {
	server := serveHTML(t, http.StatusOK, "<html><body><nav>Only navigation</nav></body></html>")
	fetcher := NewJobFetcher(fetch.NewCachedFetcher(nil))

	_, err := fetcher.FetchJobText(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrContentExtractionFailed)
}

func TestFetchJobText_BrowserFallbackForShortContent(t *testing.T) {
	server := serveHTML(t, http.StatusOK, "<html><body><main>Loading...</main></body></html>")
	var rendered []string
	render := func(_ context.Context, url string) (string, error) {
		rendered = append(rendered, url)
		return "<html><body><main><p>" + strings.Repeat("Rust and WebAssembly. ", 30) + "</p></main></body></html>", nil
	}
	fetcher := NewJobFetcher(fetch.NewCachedFetcher(nil), WithBrowserFallback(render))

	posting, err := fetcher.FetchJobText(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{server.URL}, rendered)
	assert.Contains(t, posting.Text, "Rust and WebAssembly")
	assert.True(t, posting.Metadata.Rendered)
}

func TestFetchJobText_BrowserFailureKeepsStaticText(t *testing.T) {
	server := serveHTML(t, http.StatusOK, "<html><body><main>Short posting</main></body></html>")
	render := func(context.Context, string) (string, error) {
		return "", errors.New("chrome not installed")
	}
	fetcher := NewJobFetcher(fetch.NewCachedFetcher(nil), WithBrowserFallback(render), WithVerbose(true))

	posting, err := fetcher.FetchJobText(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Short posting", posting.Text)
	assert.False(t, posting.Metadata.Rendered)
}

func TestFetchJobText_LongContentSkipsBrowser(t *testing.T) {
	server := serveHTML(t, http.StatusOK, "<html><body><main>"+strings.Repeat("Distributed systems. ", 40)+"</main></body></html>")
	render := func(context.Context, string) (string, error) {
		t.Fatal("renderer should not be called")
		return "", nil
	}
	fetcher := NewJobFetcher(fetch.NewCachedFetcher(nil), WithBrowserFallback(render))

	posting, err := fetcher.FetchJobText(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, posting.Metadata.Rendered)
}
