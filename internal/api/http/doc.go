// Package http exposes the proxy pipeline over HTTP.
//
// Routes:
//   - POST /fetch: fetch and rewrite a page, body {"url": "..."}
//   - GET /: service banner
//   - GET /health: liveness
package http
