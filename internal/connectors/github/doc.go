// Package github implements the GitHub signal source.
//
// The source runs a small set of repository searches, deduplicates the
// results and groups repositories into topics by keyword. Every topic with
// at least two repositories becomes a signal; repositories created in the
// last 30 days feed an ecosystem velocity signal.
//
// # Authentication
//
// A personal access token is optional. With a token, requests go through an
// oauth2 transport and the search API allows 30 requests per minute; without
// one, GitHub allows 10.
//
// # Rate Limiting
//
// The client implements a dual-strategy rate limiting approach:
//
//  1. Proactive throttling: a token bucket paces searches, one every
//     QueryInterval (500ms by default).
//
//  2. Reactive handling: the client monitors X-RateLimit-Remaining and
//     X-RateLimit-Reset headers. When the search quota is exhausted, it waits
//     until the reset time before continuing, or until the context ends.
//
// # Error Handling
//
// A failed search is logged and skipped; the remaining queries still run.
// Errors are mapped to [APIError] and [RateLimitError], both of which
// satisfy errors.Is against the domain sentinels.
package github
