package fetch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestFetcher(t *testing.T, config *CachedFetcherConfig, fetch func(context.Context, string, *Options) (*Result, error)) (*CachedFetcher, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	f := NewCachedFetcher(config)
	f.fetch = fetch
	f.now = clock.Now
	return f, clock
}

func TestCachedFetcher_ServesFromCacheWithinTTL(t *testing.T) {
	var calls atomic.Int32
	f, clock := newTestFetcher(t, &CachedFetcherConfig{CacheTTL: time.Minute}, func(_ context.Context, url string, _ *Options) (*Result, error) {
		calls.Add(1)
		return &Result{URL: url, HTML: "<p>job</p>", StatusCode: 200}, nil
	})

	first, err := f.Fetch(context.Background(), "https://jobs.example.com/1")
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := f.Fetch(context.Background(), "https://jobs.example.com/1")
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, int32(1), calls.Load())

	clock.Advance(time.Minute)

	third, err := f.Fetch(context.Background(), "https://jobs.example.com/1")
	require.NoError(t, err)
	assert.False(t, third.FromCache)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCachedFetcher_ErrorsAreNotCached(t *testing.T) {
	var calls atomic.Int32
	f, _ := newTestFetcher(t, nil, func(_ context.Context, url string, _ *Options) (*Result, error) {
		calls.Add(1)
		return nil, &Error{URL: url, Message: "HTTP status 503", Retryable: true}
	})

	_, err := f.Fetch(context.Background(), "https://jobs.example.com/down")
	require.Error(t, err)
	_, err = f.Fetch(context.Background(), "https://jobs.example.com/down")
	require.Error(t, err)

	var fetchErr *Error
	assert.True(t, errors.As(err, &fetchErr))
	assert.True(t, fetchErr.Retryable)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 0, f.Len())
}

func TestCachedFetcher_Invalidate(t *testing.T) {
	f, _ := newTestFetcher(t, nil, func(_ context.Context, url string, _ *Options) (*Result, error) {
		return &Result{URL: url}, nil
	})

	_, err := f.Fetch(context.Background(), "https://jobs.example.com/1")
	require.NoError(t, err)
	assert.Equal(t, 1, f.Len())

	f.Invalidate("https://jobs.example.com/1")
	assert.Equal(t, 0, f.Len())
}

func TestCachedFetcher_EvictsWhenFull(t *testing.T) {
	f, clock := newTestFetcher(t, &CachedFetcherConfig{MaxEntries: 2, CacheTTL: time.Hour}, func(_ context.Context, url string, _ *Options) (*Result, error) {
		return &Result{URL: url}, nil
	})

	for _, u := range []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"} {
		_, err := f.Fetch(context.Background(), u)
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	assert.Equal(t, 2, f.Len())
	_, ok := f.lookup("https://a.example.com")
	assert.False(t, ok, "oldest entry should be evicted")
}

func TestCachedFetcher_CollapsesConcurrentFetches(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	f, _ := newTestFetcher(t, nil, func(_ context.Context, url string, _ *Options) (*Result, error) {
		calls.Add(1)
		<-release
		return &Result{URL: url}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.Fetch(context.Background(), "https://jobs.example.com/hot")
			assert.NoError(t, err)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(8))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestDefaultCachedFetcherConfig(t *testing.T) {
	config := DefaultCachedFetcherConfig()

	assert.Equal(t, DefaultCacheTTL, config.CacheTTL)
	assert.Equal(t, DefaultCacheEntries, config.MaxEntries)
	require.NotNil(t, config.Options)
	assert.Equal(t, DefaultUserAgent, config.Options.UserAgent)
}
