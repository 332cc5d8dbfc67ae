package avatar

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/schneegans/sponsorwall/pkg/cache"
	"github.com/schneegans/sponsorwall/pkg/errors"
	"github.com/schneegans/sponsorwall/pkg/httputil"
	"github.com/schneegans/sponsorwall/pkg/observability"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
)

// DefaultUserAgent is sent with avatar requests. Some hosts refuse requests
// without a browser-like agent.
const DefaultUserAgent = "Mozilla/5.0"

// DefaultCacheTTL is how long downloaded avatars stay in the byte cache.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Fetcher returns the raw image bytes behind an avatar reference.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// FetcherFunc adapts a function to [Fetcher].
type FetcherFunc func(ctx context.Context, ref string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, ref string) ([]byte, error) { return f(ctx, ref) }

// =============================================================================
// Source Fetcher
// =============================================================================

// FetchOptions configures a [SourceFetcher].
type FetchOptions struct {
	UserAgent string        // defaults to DefaultUserAgent
	Timeout   time.Duration // defaults to httputil.DefaultTimeout
	Cache     cache.Cache   // defaults to a NullCache
	TTL       time.Duration // defaults to DefaultCacheTTL
	BaseDir   string        // relative file refs are resolved against it, default the working dir
	Attempts  int           // defaults to 3
	Delay     time.Duration // first retry delay, defaults to 1s
}

// SourceFetcher loads http(s) refs over the network, with retry and an
// on-disk byte cache, and every other ref from the local filesystem.
type SourceFetcher struct {
	client   *httputil.Client
	cache    cache.Cache
	ttl      time.Duration
	baseDir  string
	attempts int
	delay    time.Duration
}

// NewSourceFetcher creates a SourceFetcher.
func NewSourceFetcher(opts FetchOptions) *SourceFetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultCacheTTL
	}
	if opts.Attempts <= 0 {
		opts.Attempts = 3
	}
	if opts.Delay <= 0 {
		opts.Delay = time.Second
	}
	return &SourceFetcher{
		client:   httputil.NewClient(opts.Timeout, map[string]string{"User-Agent": opts.UserAgent}),
		cache:    opts.Cache,
		ttl:      opts.TTL,
		baseDir:  opts.BaseDir,
		attempts: opts.Attempts,
		delay:    opts.Delay,
	}
}

// Fetch implements [Fetcher].
func (f *SourceFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, errors.New(errors.ErrCodeMissingAvatar, "empty avatar reference")
	}
	if !errors.IsRemoteRef(ref) {
		return f.readFile(ctx, ref)
	}

	start := time.Now()
	key := cache.Key("avatar", ref)
	if data, ok, _ := f.cache.Get(ctx, key); ok {
		observability.Fetch().OnFetch(ctx, ref, len(data), true, time.Since(start), nil)
		return data, nil
	}

	var data []byte
	err := httputil.RetryNotify(ctx, f.attempts, f.delay, func() error {
		var err error
		data, err = f.client.GetBytes(ctx, ref)
		return err
	}, func(attempt int, err error) {
		observability.Fetch().OnRetry(ctx, ref, attempt, err)
	})
	observability.Fetch().OnFetch(ctx, ref, len(data), false, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	_ = f.cache.Set(ctx, key, data, f.ttl)
	return data, nil
}

func (f *SourceFetcher) readFile(ctx context.Context, ref string) ([]byte, error) {
	path := ref
	if !filepath.IsAbs(path) && f.baseDir != "" {
		path = filepath.Join(f.baseDir, path)
	}
	start := time.Now()
	data, err := os.ReadFile(path)
	observability.Fetch().OnFetch(ctx, ref, len(data), false, time.Since(start), err)
	return data, err
}

// =============================================================================
// Memo Fetcher
// =============================================================================

// MemoFetcher fetches each ref at most once per run. Concurrent requests for
// the same ref share one underlying fetch. Failures are not memoized.
type MemoFetcher struct {
	next  Fetcher
	mem   *cache.MemoryCache
	group singleflight.Group
}

// NewMemoFetcher wraps next.
func NewMemoFetcher(next Fetcher) *MemoFetcher {
	return &MemoFetcher{next: next, mem: cache.NewMemoryCache()}
}

// Fetch implements [Fetcher].
func (m *MemoFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if data, ok, _ := m.mem.Get(ctx, ref); ok {
		return data, nil
	}
	v, err, _ := m.group.Do(ref, func() (any, error) {
		data, err := m.next.Fetch(ctx, ref)
		if err != nil {
			return nil, err
		}
		_ = m.mem.Set(ctx, ref, data, 0)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Len returns the number of memoized refs.
func (m *MemoFetcher) Len() int { return m.mem.Len() }

// =============================================================================
// Prefetch
// =============================================================================

// Prefetch fetches the avatars of all records with at most parallel requests
// in flight, so that later sequential rendering hits the memo. The first
// failure cancels the remaining fetches and is returned naming the sponsor.
func Prefetch(ctx context.Context, f Fetcher, records sponsor.Records, parallel int, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))

	seen := map[string]bool{}
	for _, rec := range records {
		if rec.Avatar == "" || seen[rec.Avatar] {
			continue
		}
		seen[rec.Avatar] = true
		rec := rec
		g.Go(func() error {
			if _, err := f.Fetch(gctx, rec.Avatar); err != nil {
				return fetchError(rec, err)
			}
			logger.Debug("fetched avatar", "sponsor", rec.Name, "ref", rec.Avatar)
			return nil
		})
	}
	return g.Wait()
}

func fetchError(rec sponsor.Record, err error) error {
	switch {
	case errors.GetCode(err) == errors.ErrCodeMissingAvatar:
		return errors.Wrap(errors.ErrCodeMissingAvatar, err, "sponsor %q", rec.Name)
	case stderrors.Is(err, httputil.ErrNotFound):
		return errors.Wrap(errors.ErrCodeNotFound, err, "avatar of sponsor %q (%s)", rec.Name, rec.Avatar)
	case stderrors.Is(err, httputil.ErrNetwork):
		return errors.Wrap(errors.ErrCodeNetwork, err, "avatar of sponsor %q (%s)", rec.Name, rec.Avatar)
	}
	return errors.Wrap(errors.ErrCodeAvatarFetch, err, "avatar of sponsor %q (%s)", rec.Name, rec.Avatar)
}
