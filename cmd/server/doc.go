// Package main is the entry point for the Faleproxy server.
//
// Faleproxy fetches a web page, rewrites its relative URLs to absolute form,
// swaps "Yale" for "Fale" in the visible text and returns the result as JSON.
//
// Configuration:
//   - Environment variables (12-factor), see internal/infrastructure/config
//   - CLI flags (override env vars)
//
// Usage:
//
//	./server -port 3001
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
