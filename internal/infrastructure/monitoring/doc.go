/*
Package monitoring provides Prometheus metrics for the proxy service.

# Features

- HTTP request metrics (latency, throughput, size)
- Proxy outcome counts by error kind
- Upstream fetch latency and failures
- Rewrite counts (URLs, inline style URLs, text nodes)
- Go runtime and process metrics

Each Metrics value owns its registry, so multiple instances can coexist.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
