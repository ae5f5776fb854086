// Package onchain provides the on-chain signal source.
//
// It combines two upstream feeds:
//
//   - DeFi Llama: chain TVL and the Solana protocol list
//   - Solana JSON-RPC: current slot and recent performance samples
//
// Both feeds are fetched concurrently. A failing feed is logged and skipped;
// signals derived from the other feed are still returned.
package onchain
