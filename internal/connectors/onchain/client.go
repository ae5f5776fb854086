package onchain

import "context"

// Client performs JSON requests. Satisfied by *httpjson.Fetcher.
type Client interface {
	GetJSON(ctx context.Context, url string, out any) error
	PostJSON(ctx context.Context, url string, in, out any) error
}
