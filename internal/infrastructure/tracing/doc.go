/*
Package tracing provides lightweight request tracing.

Every inbound HTTP request gets a span. The trace id is taken from the
X-Trace-ID header when the caller sends one, otherwise a new UUID is
generated. Both ids are echoed back in response headers and stored in the
request context so handlers can tag their logs with them.

Finished spans are written to the zap logger.

# Usage

	tracer := tracing.New("faleproxy", logger.Logger)
	router.Use(tracing.HTTPMiddleware(tracer))
*/
package tracing
