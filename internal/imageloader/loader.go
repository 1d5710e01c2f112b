// Package imageloader fetches remote images for the async image widgets and
// turns them into terminal half-block art. Caching lives here, not in the
// widgets: a fetched body is stored under the cache directory keyed by URL.
package imageloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/henri123lemoine/gallery/internal/cache"
)

// ErrStatus is returned when the server answers with a non-200 status.
var ErrStatus = errors.New("unexpected status")

// ErrTooLarge is returned when a body exceeds the configured limit.
var ErrTooLarge = errors.New("image too large")

// Loader produces a decoded image for a URL.
type Loader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, url string) (image.Image, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, url string) (image.Image, error) {
	return f(ctx, url)
}

// Options configures an HTTPLoader.
type Options struct {
	Timeout  time.Duration
	CacheDir string
	MaxBytes int64
	// NoCache disables the disk cache.
	NoCache bool
	Logger  zerolog.Logger
}

// HTTPLoader fetches images over HTTP with a disk cache in front.
type HTTPLoader struct {
	client   *http.Client
	store    *cache.Store
	maxBytes int64
	log      zerolog.Logger
}

// DefaultMaxBytes bounds a single image body.
const DefaultMaxBytes = 8 << 20

// NewHTTPLoader creates a loader with the given options.
func NewHTTPLoader(opts Options) *HTTPLoader {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	l := &HTTPLoader{
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		maxBytes: opts.MaxBytes,
		log:      opts.Logger,
	}
	if !opts.NoCache {
		l.store = cache.New(opts.CacheDir)
	}
	return l
}

// Load returns the image at url, from cache when possible.
func (l *HTTPLoader) Load(ctx context.Context, url string) (image.Image, error) {
	if l.store != nil {
		if data, ok := l.store.Get(url); ok {
			if img, err := decode(data); err == nil {
				l.log.Debug().Str("url", url).Msg("image cache hit")
				return img, nil
			}
			l.log.Warn().Str("url", url).Msg("dropping undecodable cache entry")
			if err := l.store.Delete(url); err != nil {
				l.log.Warn().Err(err).Str("url", url).Msg("image cache delete failed")
			}
		}
	}

	data, err := l.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	img, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}

	if l.store != nil {
		if err := l.store.Put(url, data); err != nil {
			l.log.Warn().Err(err).Str("url", url).Msg("image cache write failed")
		}
	}
	return img, nil
}

func (l *HTTPLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrStatus, url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > l.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, url, l.maxBytes)
	}

	l.log.Debug().Str("url", url).Int("bytes", len(body)).Msg("image fetched")
	return body, nil
}

func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
