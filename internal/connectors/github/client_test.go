package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), ClientConfig{
		Token:   token,
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient(context.Background(), ClientConfig{BaseURL: "://bad"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewClient_QuotaDependsOnToken(t *testing.T) {
	anon, err := NewClient(context.Background(), ClientConfig{})
	require.NoError(t, err)
	assert.Equal(t, SearchRateLimitAnonymous, anon.RateLimiter().Limit())

	authed, err := NewClient(context.Background(), ClientConfig{Token: "ghp_test"})
	require.NoError(t, err)
	assert.Equal(t, SearchRateLimitAuthenticated, authed.RateLimiter().Limit())
}

func TestSearchRepositories_SendsQuery(t *testing.T) {
	client := newTestClient(t, "ghp_test", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		assert.Equal(t, "solana agent", r.URL.Query().Get("q"))
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, "desc", r.URL.Query().Get("order"))
		assert.Equal(t, "15", r.URL.Query().Get("per_page"))
		assert.Equal(t, "Bearer ghp_test", r.Header.Get("Authorization"))

		w.Header().Set("X-RateLimit-Remaining", "29")
		w.Header().Set("X-RateLimit-Limit", "30")
		_, _ = w.Write([]byte(`{"total_count":1,"items":[{"full_name":"acme/agent","stargazers_count":7}]}`))
	})

	repos, err := client.SearchRepositories(context.Background(), "solana agent", 15)

	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "acme/agent", repos[0].GetFullName())
	assert.Equal(t, 7, repos[0].GetStargazersCount())
	assert.Equal(t, 29, client.RateLimiter().Remaining())
}

func TestSearchRepositories_Anonymous(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"total_count":0,"items":[]}`))
	})

	repos, err := client.SearchRepositories(context.Background(), "solana", 5)

	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestSearchRepositories_ValidationError(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Validation Failed"}`))
	})

	_, err := client.SearchRepositories(context.Background(), "bad:", 5)

	require.Error(t, err)
	assert.True(t, IsValidationFailed(err))
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.False(t, IsRateLimited(err))
}

func TestSearchRepositories_RateLimited(t *testing.T) {
	reset := time.Now().Add(-time.Second).Unix()
	client := newTestClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Limit", "10")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"API rate limit exceeded"}`))
	})

	_, err := client.SearchRepositories(context.Background(), "solana", 5)

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	var rlErr *RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, 10, rlErr.Limit)
	assert.Equal(t, reset, rlErr.ResetAt.Unix())
}

func TestSearchRepositories_SpentQuotaFailsFast(t *testing.T) {
	var hits atomic.Int32
	reset := time.Now().Add(time.Minute).Unix()
	client := newTestClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Limit", "10")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset, 10))
		_, _ = w.Write([]byte(`{"items":[{"full_name":"acme/agent"}]}`))
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := client.SearchRepositories(ctx, "solana", 5)
	require.NoError(t, err)

	start := time.Now()
	_, err = client.SearchRepositories(ctx, "solana agent", 5)

	assert.True(t, IsRateLimited(err))
	assert.Less(t, time.Since(start), time.Second)
	assert.NoError(t, ctx.Err())
	assert.EqualValues(t, 1, hits.Load())
}

func TestSearchRepositories_CachesResults(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"items":[{"full_name":"acme/agent"}]}`))
	}))
	t.Cleanup(server.Close)
	client, err := NewClient(context.Background(), ClientConfig{
		BaseURL:   server.URL,
		CacheTTL:  time.Minute,
		CacheSize: 8,
	})
	require.NoError(t, err)

	first, err := client.SearchRepositories(context.Background(), "solana", 5)
	require.NoError(t, err)
	second, err := client.SearchRepositories(context.Background(), "solana", 5)
	require.NoError(t, err)
	_, err = client.SearchRepositories(context.Background(), "solana", 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 2, hits.Load(), "page size is part of the cache key")
	assert.Equal(t, 2, client.CacheLen())
}

func TestSearchRepositories_FailuresNotCached(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}))
	t.Cleanup(server.Close)
	client, err := NewClient(context.Background(), ClientConfig{
		BaseURL:   server.URL,
		CacheTTL:  time.Minute,
		CacheSize: 8,
	})
	require.NoError(t, err)

	_, err = client.SearchRepositories(context.Background(), "solana", 5)
	require.Error(t, err)
	_, err = client.SearchRepositories(context.Background(), "solana", 5)
	require.Error(t, err)

	assert.Zero(t, client.CacheLen())
	assert.GreaterOrEqual(t, hits.Load(), int32(2))
}

func TestSearchRepositories_NoCacheByDefault(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	for range 2 {
		_, err := client.SearchRepositories(context.Background(), "solana", 5)
		require.NoError(t, err)
	}

	assert.EqualValues(t, 2, hits.Load())
	assert.Zero(t, client.CacheLen())
}

func TestSearchRepositories_ContextCancelled(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SearchRepositories(ctx, "solana", 5)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestErrors_Unauthorized(t *testing.T) {
	err := &APIError{StatusCode: http.StatusUnauthorized, Message: "Bad credentials"}

	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsUnauthorized(errors.New("other")))
	assert.Contains(t, err.Error(), "401")
}

func TestSource_SecondCollectServedFromCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"items":[{"full_name":"acme/agent","description":"solana ai agent"}]}`))
	}))
	t.Cleanup(server.Close)
	client, err := NewClient(context.Background(), ClientConfig{
		BaseURL:   server.URL,
		CacheTTL:  time.Minute,
		CacheSize: 8,
	})
	require.NoError(t, err)
	src := New(client, Config{Queries: []string{"solana agent", "solana ai"}, MaxQueries: 2, PerPage: 5})

	first := src.Collect(context.Background())
	second := src.Collect(context.Background())

	assert.EqualValues(t, 2, hits.Load())
	assert.Equal(t, len(first), len(second))
}
