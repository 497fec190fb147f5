// Package client provides the outbound HTTP client used to retrieve upstream pages.
//
// Built on go-resty/resty with:
//   - A pooled transport (from go-retryablehttp, retries disabled)
//   - Per-client rate limiting (golang.org/x/time/rate)
//   - Optional per-host circuit breakers (sony/gobreaker) that fail fast when one upstream keeps failing
//   - Context-based cancellation
//
// Every request is a single attempt. Callers decide how to treat status codes.
//
// Example Usage:
//
//	c := client.New(client.DefaultConfig())
//	req, err := c.Request(ctx)
//	resp, err := c.ExecuteWithBreaker("example.com", func() (*resty.Response, error) {
//		return req.Get("https://example.com/")
//	})
package client
