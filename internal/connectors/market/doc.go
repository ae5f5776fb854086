// Package market provides the CoinGecko signal source.
//
// One request to /coins/markets for the configured ecosystem category yields
// up to four signals: SOL market position, weekly gainers, weekly losers and
// volume concentration.
package market
