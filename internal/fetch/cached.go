package fetch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long a fetched page is served from memory.
const DefaultCacheTTL = 15 * time.Minute

// DefaultCacheEntries bounds the number of cached pages.
const DefaultCacheEntries = 256

// CachedFetcher wraps URL with an in-memory, TTL-bounded page cache.
// Concurrent requests for the same URL share a single fetch.
type CachedFetcher struct {
	options    *Options
	ttl        time.Duration
	maxEntries int
	fetch      func(ctx context.Context, url string, opts *Options) (*Result, error)
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

type cacheEntry struct {
	result    *Result
	expiresAt time.Time
}

// CachedFetcherConfig holds configuration for the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL   time.Duration
	MaxEntries int
	Options    *Options
}

// DefaultCachedFetcherConfig returns the default cache configuration.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL:   DefaultCacheTTL,
		MaxEntries: DefaultCacheEntries,
		Options:    DefaultOptions(),
	}
}

// NewCachedFetcher creates a new cached fetcher.
func NewCachedFetcher(config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	f := &CachedFetcher{
		options:    config.Options,
		ttl:        config.CacheTTL,
		maxEntries: config.MaxEntries,
		fetch:      URL,
		now:        time.Now,
		entries:    make(map[string]cacheEntry),
	}
	if f.options == nil {
		f.options = DefaultOptions()
	}
	if f.ttl <= 0 {
		f.ttl = DefaultCacheTTL
	}
	if f.maxEntries <= 0 {
		f.maxEntries = DefaultCacheEntries
	}
	return f
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

// Fetch returns the page at urlStr, from cache when a fresh copy exists.
// Failed fetches are never cached.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	if result, ok := f.lookup(urlStr); ok {
		return &CachedResult{Result: result, FromCache: true}, nil
	}

	v, err, _ := f.group.Do(urlStr, func() (any, error) {
		result, err := f.fetch(ctx, urlStr, f.options)
		if err != nil {
			return nil, err
		}
		f.store(urlStr, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return &CachedResult{Result: v.(*Result)}, nil
}

// Invalidate drops any cached copy of urlStr.
func (f *CachedFetcher) Invalidate(urlStr string) {
	f.mu.Lock()
	delete(f.entries, urlStr)
	f.mu.Unlock()
}

// Len returns the number of cached pages, fresh or not.
func (f *CachedFetcher) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

func (f *CachedFetcher) lookup(urlStr string) (*Result, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[urlStr]
	if !ok {
		return nil, false
	}
	if !f.now().Before(entry.expiresAt) {
		delete(f.entries, urlStr)
		return nil, false
	}
	return entry.result, true
}

func (f *CachedFetcher) store(urlStr string, result *Result) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	if len(f.entries) >= f.maxEntries {
		f.evictLocked(now)
	}
	f.entries[urlStr] = cacheEntry{result: result, expiresAt: now.Add(f.ttl)}
}

// evictLocked drops expired entries, then the entry closest to expiry if the
// cache is still full.
func (f *CachedFetcher) evictLocked(now time.Time) {
	var oldestKey string
	var oldest time.Time
	for key, entry := range f.entries {
		if !now.Before(entry.expiresAt) {
			delete(f.entries, key)
			continue
		}
		if oldestKey == "" || entry.expiresAt.Before(oldest) {
			oldestKey, oldest = key, entry.expiresAt
		}
	}
	if len(f.entries) >= f.maxEntries && oldestKey != "" {
		delete(f.entries, oldestKey)
	}
}
