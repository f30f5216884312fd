// Package priceclient implements C6: the rate-limited, cached,
// retrying HTTP client the market run (C8) uses to query a
// supermarket's product search API.
package priceclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/mealpath/mealplan-engine/internal/domain"
	"github.com/mealpath/mealplan-engine/pkg/cache"
	applogger "github.com/mealpath/mealplan-engine/pkg/logger"
	"github.com/mealpath/mealplan-engine/pkg/ratelimit"
	"github.com/mealpath/mealplan-engine/pkg/retry"
)

// Cache is the subset of pkg/cache.SWRCache this client depends on.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (cache.State, error)
	Set(ctx context.Context, key string, value interface{}, freshTTL, hardTTL time.Duration) error
	TryBeginRefresh(key string) bool
	EndRefresh(key string)
}

// Config tunes timeouts, retry counts, and cache windows (§4.6).
type Config struct {
	HTTPTimeout         time.Duration
	MaxRetries          int
	RateLimitRetryDelay time.Duration
	FreshTTL            time.Duration
	HardTTL             time.Duration
	PageSize            int
}

// Client is the rate-limited, cached, retrying façade over a set of
// per-store SearchProviders.
type Client struct {
	providers map[string]SearchProvider
	bucket    *ratelimit.TokenBucket
	cache     Cache
	retryer   *retry.Policy
	cfg       Config
	log       *applogger.Logger
}

func New(providers []SearchProvider, bucket *ratelimit.TokenBucket, c Cache, cfg Config, log *applogger.Logger) *Client {
	byStore := make(map[string]SearchProvider, len(providers))
	for _, p := range providers {
		byStore[p.Store()] = p
	}
	retryer := retry.NewExponential(cfg.MaxRetries, 150*time.Millisecond, 2*time.Second)
	retryer.Condition = func(err error) bool {
		var pErr *Error
		return errors.As(err, &pErr) && pErr.Retryable()
	}
	return &Client{
		providers: byStore,
		bucket:    bucket,
		cache:     c,
		retryer:   retryer,
		cfg:       cfg,
		log:       log.Tag("priceclient"),
	}
}

// FetchPrices is the §9 fetch_prices(store, query, page) operation.
func (c *Client) FetchPrices(ctx context.Context, store, query string, page int) ([]domain.SKUCandidate, error) {
	provider, ok := c.providers[store]
	if !ok {
		return nil, newError(KindConfig, store, fmt.Sprintf("no search provider configured for store %q", store), nil)
	}

	key := fmt.Sprintf("prices:%s:%s:%d", store, query, page)

	var cached []domain.SKUCandidate
	state, err := c.cache.Get(ctx, key, &cached)
	if err == nil {
		switch state {
		case cache.Fresh:
			return cached, nil
		case cache.Stale:
			if c.cache.TryBeginRefresh(key) {
				go func() {
					defer c.cache.EndRefresh(key)
					_, _ = c.fetchAndCache(context.Background(), provider, key, query, page)
				}()
			}
			return cached, nil
		}
	}

	return c.fetchAndCache(ctx, provider, key, query, page)
}

func (c *Client) fetchAndCache(ctx context.Context, provider SearchProvider, cacheKey, query string, page int) ([]domain.SKUCandidate, error) {
	results, err := c.fetchWithRetry(ctx, provider, query, page)
	if err != nil {
		return nil, err
	}
	if setErr := c.cache.Set(ctx, cacheKey, results, c.cfg.FreshTTL, c.cfg.HardTTL); setErr != nil {
		c.log.Warn("failed to cache price results", "key", cacheKey, "error", setErr.Error())
	}
	return results, nil
}

// fetchWithRetry runs the bucket-gated, classified-retry HTTP call.
// When the retry loop ends on a rate_limited verdict, which the retry
// policy never retries, it makes exactly one more attempt after RateLimitRetryDelay that
// bypasses the token bucket entirely — the provider already told us to
// slow down, so spending another token on the immediate retry would
// just trade one 429 for another (§4.6).
func (c *Client) fetchWithRetry(ctx context.Context, provider SearchProvider, query string, page int) ([]domain.SKUCandidate, error) {
	var results []domain.SKUCandidate
	var lastErr error

	err := c.retryer.Execute(ctx, func(attempt int) error {
		res, callErr := c.callOnce(ctx, provider, query, page, true)
		if callErr == nil {
			results = res
			return nil
		}
		lastErr = callErr
		return callErr
	})

	if err == nil {
		return results, nil
	}

	var pErr *Error
	if errors.As(lastErr, &pErr) && pErr.Kind == KindRateLimited {
		select {
		case <-time.After(c.cfg.RateLimitRetryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		res, callErr := c.callOnce(ctx, provider, query, page, false)
		if callErr == nil {
			return res, nil
		}
		return nil, callErr
	}

	return nil, err
}

func (c *Client) callOnce(ctx context.Context, provider SearchProvider, query string, page int, gated bool) ([]domain.SKUCandidate, error) {
	if gated {
		res, err := c.bucket.TryAcquire(ctx, provider.Store())
		if err != nil {
			return nil, newError(KindNetwork, provider.Store(), "token bucket acquisition failed", err)
		}
		if !res.Acquired {
			return nil, newError(KindRateLimited, provider.Store(), "local rate limit budget exhausted", nil)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.HTTPTimeout)
	defer cancel()

	results, err := provider.Search(callCtx, query, page, c.cfg.PageSize)
	if err == nil {
		return results, nil
	}
	return nil, classify(provider.Store(), err)
}

// classify maps a provider-level error onto the taxonomy. Concrete
// SearchProvider implementations return *Error directly when they can
// observe an HTTP status; classify only needs to handle the generic
// transport failures (timeout, DNS, connection refused).
func classify(store string, err error) error {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(KindTimeout, store, "request timed out", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, store, "request timed out", err)
	}
	if _, ok := err.(*net.OpError); ok {
		return newError(KindNetwork, store, "network error", err)
	}
	return newError(KindNetwork, store, "unclassified transport error", err)
}

// ClassifyHTTPStatus maps a response status code onto the taxonomy;
// shared by every concrete SearchProvider so the classification rule
// lives in one place.
func ClassifyHTTPStatus(store string, status int) error {
	switch {
	case status == http.StatusTooManyRequests:
		return newError(KindRateLimited, store, "upstream rate limited the request", nil)
	case status >= 500:
		return newError(KindUpstream5xx, store, fmt.Sprintf("upstream returned %d", status), nil)
	case status >= 400:
		return newError(KindBadRequest, store, fmt.Sprintf("upstream returned %d", status), nil)
	default:
		return nil
	}
}
