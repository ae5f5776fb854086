package httpjson

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/logger"
)

// Default configuration values.
const (
	DefaultTimeout   = 15 * time.Second
	DefaultRate      = 2.0
	DefaultUserAgent = "ronin/" + domain.AgentVersion

	// maxBodyBytes bounds how much of a response is read.
	// DeFi Llama's protocol list is several megabytes.
	maxBodyBytes = 64 << 20

	// maxErrorBody bounds the body excerpt kept in a StatusError.
	maxErrorBody = 256
)

// Config holds configuration for a Fetcher.
type Config struct {
	// Timeout bounds each request (default: 15s).
	Timeout time.Duration

	// CacheTTL is how long successful GET bodies are reused. Zero disables caching.
	CacheTTL time.Duration

	// CacheSize bounds the number of cached bodies.
	CacheSize int

	// Rate is the per-host request rate in requests per second (default: 2).
	Rate float64

	// UserAgent is sent with every request.
	UserAgent string

	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
}

// Fetcher performs JSON requests with caching and per-host pacing.
// It is safe for concurrent use.
type Fetcher struct {
	client    *http.Client
	cache     *expirable.LRU[string, []byte]
	userAgent string
	rate      rate.Limit

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a Fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRate
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	f := &Fetcher{
		client:    client,
		userAgent: cfg.UserAgent,
		rate:      rate.Limit(cfg.Rate),
		limiters:  make(map[string]*rate.Limiter),
	}
	if cfg.CacheTTL > 0 && cfg.CacheSize > 0 {
		f.cache = expirable.NewLRU[string, []byte](cfg.CacheSize, nil, cfg.CacheTTL)
	}
	return f
}

// GetJSON fetches rawURL and decodes the body into out.
// A cached body is used when one is still fresh.
func (f *Fetcher) GetJSON(ctx context.Context, rawURL string, out any) error {
	if f.cache != nil {
		if body, ok := f.cache.Get(rawURL); ok {
			logger.Debug("httpjson: cache hit %s", rawURL)
			return decode(rawURL, body, out)
		}
	}

	body, err := f.do(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	if err := decode(rawURL, body, out); err != nil {
		return err
	}

	if f.cache != nil {
		f.cache.Add(rawURL, body)
	}
	return nil
}

// PostJSON sends in as a JSON body and decodes the response into out.
// POST responses are never cached.
func (f *Fetcher) PostJSON(ctx context.Context, rawURL string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	body, err := f.do(ctx, http.MethodPost, rawURL, payload)
	if err != nil {
		return err
	}
	return decode(rawURL, body, out)
}

// Purge drops every cached body.
func (f *Fetcher) Purge() {
	if f.cache != nil {
		f.cache.Purge()
	}
}

// CacheLen returns the number of cached bodies.
func (f *Fetcher) CacheLen() int {
	if f.cache == nil {
		return 0
	}
	return f.cache.Len()
}

func (f *Fetcher) do(ctx context.Context, method, rawURL string, payload []byte) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	if err := f.limiter(u.Host).Wait(ctx); err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	logger.Debug("httpjson: %s %s -> %d (%d bytes, %s)", method, rawURL, resp.StatusCode, len(body), time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Method:     method,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Body:       excerpt(body),
		}
	}
	return body, nil
}

func (f *Fetcher) limiter(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.limiters[host]
	if !ok {
		l = rate.NewLimiter(f.rate, 1)
		f.limiters[host] = l
	}
	return l
}

func decode(rawURL string, body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrUpstream, rawURL, err)
	}
	return nil
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody]
	}
	return s
}
