// Package github implements repository discovery through the GitHub search API.
//
// # Components
//
//   - Client: go-github wrapper that routes every request through a RateLimiter
//   - RateLimiter: quota tracking from response headers, plus optional proactive throttling
//   - Searcher: paginated search returning domain repositories
//
// # Authentication
//
// A personal access token is optional. Without one, search requests run
// against the unauthenticated quota (10 requests per minute instead of 30).
//
// # Rate Limiting
//
// The limiter reads X-RateLimit-Remaining, X-RateLimit-Limit and
// X-RateLimit-Reset after every response. Before each request, if the
// remaining quota is at or below MinBuffer and the reset time is in the
// future, it blocks until one second past the reset. A token bucket
// (golang.org/x/time/rate) can additionally cap the request rate; it is off
// unless search.requests_per_second is set.
//
// # Pagination
//
// Pages of up to 100 items are requested starting at page 1. Pagination stops
// on an empty page, a short page, or after the configured page cap. The
// search API never returns more than 1000 results for one query.
//
// # Error Handling
//
//   - Rate limit errors: partial results are returned with a *RateLimitError
//   - Transport errors and other statuses: logged, partial results returned
//   - Cancellation: ctx.Err() is returned
package github
