// Package googlefetch is the outbound HTTP collaborator for the Static
// Maps API: it downloads built map URLs with rate limiting and bounded
// retries on transport failures. HTTP status codes are results, not
// errors; the caller decides what a 403 means.
package googlefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/unaigarro/mapstamp/internal/core/domain"
	"github.com/unaigarro/mapstamp/internal/pkg/metrics"
)

// Fetcher implements ports.ImageFetcher.
type Fetcher struct {
	client     *http.Client
	limiter    *rate.Limiter
	userAgent  string
	maxRetries int
}

// Options tunes the fetcher; zero values fall back to safe defaults.
type Options struct {
	Timeout    time.Duration
	RatePerSec float64
	Burst      int
	MaxRetries int
	UserAgent  string
}

// New creates a fetcher.
func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 5
	}
	if opts.Burst <= 0 {
		opts.Burst = 10
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "mapstamp/1.0"
	}
	return &Fetcher{
		client:     &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RatePerSec), opts.Burst),
		userAgent:  opts.UserAgent,
		maxRetries: opts.MaxRetries,
	}
}

// Fetch performs a GET for the given URL and returns status, body, and
// content type. Transport failures are retried with a short backoff;
// the last error is returned when all attempts fail.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*domain.FetchedImage, error) {
	var lastErr error

	for attempt := 0; attempt < f.maxRetries; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", f.userAgent)

		start := time.Now()
		resp, err := f.client.Do(req)
		metrics.ImageFetchDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.ImageFetchErrors.Inc()
			lastErr = err
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(200+attempt*300) * time.Millisecond):
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			metrics.ImageFetchErrors.Inc()
			lastErr = err
			continue
		}

		return &domain.FetchedImage{
			Status:      resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        body,
		}, nil
	}

	return nil, fmt.Errorf("fetch %s: %w", url, lastErr)
}
