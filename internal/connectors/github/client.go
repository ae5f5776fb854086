package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/ronin/internal/connectors/httpjson"
	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 15 * time.Second

// ClientConfig configures the search client.
type ClientConfig struct {
	// Token is an optional personal access token.
	Token string

	// BaseURL overrides the API root. Empty means api.github.com.
	BaseURL string

	// Timeout bounds each request.
	Timeout time.Duration

	// QueryInterval paces consecutive searches.
	QueryInterval time.Duration

	// CacheTTL is how long search results are reused. Zero disables caching.
	CacheTTL time.Duration

	// CacheSize bounds the number of cached searches.
	CacheSize int
}

// Client wraps the go-github client with rate limiting, result caching and
// error mapping.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
	cache       *expirable.LRU[string, []*gh.Repository]
}

// NewClient creates a GitHub search client. With a token, requests are
// authenticated through an oauth2 transport.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	quota := SearchRateLimitAnonymous
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = cfg.Timeout
		quota = SearchRateLimitAuthenticated
	}

	client := gh.NewClient(httpClient)
	client.UserAgent = httpjson.DefaultUserAgent
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("%w: github base url: %v", domain.ErrInvalidInput, err)
		}
		client.BaseURL = base
	}

	c := &Client{
		gh:          client,
		rateLimiter: NewRateLimiter(cfg.QueryInterval, quota),
	}
	if cfg.CacheTTL > 0 && cfg.CacheSize > 0 {
		c.cache = expirable.NewLRU[string, []*gh.Repository](cfg.CacheSize, nil, cfg.CacheTTL)
	}
	return c, nil
}

// SearchRepositories runs one repository search, most recently updated first.
// A fresh cached result is returned without touching the search quota.
func (c *Client) SearchRepositories(ctx context.Context, query string, perPage int) ([]*gh.Repository, error) {
	key := cacheKey(query, perPage)
	if c.cache != nil {
		if repos, ok := c.cache.Get(key); ok {
			logger.Debug("github: cache hit %q", query)
			return repos, nil
		}
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.SearchOptions{
		Sort:        "updated",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}
	result, resp, err := c.gh.Search.Repositories(ctx, query, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "search repositories")
	}
	var repos []*gh.Repository
	if result != nil {
		repos = result.Repositories
	}
	if c.cache != nil {
		c.cache.Add(key, repos)
	}
	return repos, nil
}

// CacheLen returns the number of cached searches.
func (c *Client) CacheLen() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

func cacheKey(query string, perPage int) string {
	return fmt.Sprintf("%d\x00%s", perPage, query)
}

// RateLimiter exposes the limiter for inspection.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp != nil {
		c.rateLimiter.Observe(resp.Rate)
	}
}

// wrapError converts go-github errors to package errors.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		resetAt := time.Now()
		if abuseErr.RetryAfter != nil {
			resetAt = resetAt.Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{
			ResetAt:   resetAt,
			Remaining: 0,
			Limit:     c.rateLimiter.Limit(),
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
