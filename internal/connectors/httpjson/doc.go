// Package httpjson provides the JSON-over-HTTP client shared by the public
// feed connectors (DeFi Llama, Solana RPC, CoinGecko).
//
// GET responses are cached for a configurable TTL in an expirable LRU so that
// repeated analysis runs within the window reuse upstream data. Requests are
// paced per host with a token bucket.
package httpjson
