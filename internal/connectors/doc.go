// Package connectors holds the signal sources ronin collects from.
//
// Each subpackage implements driven.SignalSource for one upstream:
//
//   - onchain: DeFi Llama protocol TVL and Solana RPC network stats
//   - github: repository search activity
//   - market: CoinGecko token market data
//
// httpjson is the shared JSON fetcher with response caching, and numfmt
// formats the numbers that end up in signal descriptions.
//
// Sources never fail a collection: an upstream error is logged and the
// source contributes no signals.
package connectors
