package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ErrBreakerOpen is returned when the circuit breaker rejects a request
var ErrBreakerOpen = errors.New("external service unavailable: circuit breaker open")

// maxBreakers bounds the number of tracked upstream hosts
const maxBreakers = 1024

// Config controls outbound request behavior
type Config struct {
	Timeout        time.Duration
	UserAgent      string
	RateLimit      float64 // requests per second, 0 = unlimited
	BreakerEnabled bool
	MaxFailures    uint32
	BreakerTimeout time.Duration
}

// DefaultConfig returns the client defaults. The breaker is off unless enabled.
func DefaultConfig() Config {
	return Config{
		Timeout:        30 * time.Second,
		UserAgent:      "Faleproxy/1.0",
		MaxFailures:    10,
		BreakerTimeout: 30 * time.Second,
	}
}

// Client wraps resty with rate limiting and per-host circuit breakers.
// Failures against one upstream host never trip the breaker of another.
type Client struct {
	Resty   *resty.Client
	Limiter *rate.Limiter

	breakerEnabled bool
	maxFailures    uint32
	breakerTimeout time.Duration

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewClient creates a client with default configuration
func NewClient() *Client {
	return New(DefaultConfig())
}

// New creates a client from cfg. Requests are never retried.
func New(cfg Config) *Client {
	// Pooled transport only; retries are disabled
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	restyClient := resty.New()
	restyClient.
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	restyClient.SetTransport(retryClient.HTTPClient.Transport)

	c := &Client{
		Resty:          restyClient,
		Limiter:        rate.NewLimiter(rate.Inf, 0),
		breakerEnabled: cfg.BreakerEnabled,
		maxFailures:    cfg.MaxFailures,
		breakerTimeout: cfg.BreakerTimeout,
		breakers:       make(map[string]*gobreaker.CircuitBreaker),
	}
	if c.maxFailures == 0 {
		c.maxFailures = 10
	}
	if cfg.RateLimit > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst(cfg.RateLimit))
	}

	return c
}

func burst(rps float64) int {
	if rps < 1 {
		return 1
	}
	return int(rps)
}

// breaker returns the breaker for host, creating it on first use.
// Returns nil when breakers are disabled.
func (c *Client) breaker(host string) *gobreaker.CircuitBreaker {
	if !c.breakerEnabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cb, ok := c.breakers[host]; ok {
		return cb
	}
	if len(c.breakers) >= maxBreakers {
		c.evictClosed()
	}

	maxFailures := c.maxFailures
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "http-external:" + host,
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     c.breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Upstream sites vary in reliability, so trip late
			return counts.ConsecutiveFailures >= maxFailures ||
				(counts.Requests >= 20 && float64(counts.TotalFailures)/float64(counts.Requests) > 0.7)
		},
	})
	c.breakers[host] = cb
	return cb
}

// evictClosed drops breakers that are not currently rejecting. Caller holds mu.
func (c *Client) evictClosed() {
	for host, cb := range c.breakers {
		if cb.State() == gobreaker.StateClosed {
			delete(c.breakers, host)
		}
	}
}

// Request creates a new request, waiting on the rate limiter first
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}
	return c.Resty.R().SetContext(ctx), nil
}

// ExecuteWithBreaker runs fn under the circuit breaker for host
func (c *Client) ExecuteWithBreaker(host string, fn func() (*resty.Response, error)) (*resty.Response, error) {
	cb := c.breaker(host)
	if cb == nil {
		return fn()
	}

	result, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrBreakerOpen
	}
	if err != nil {
		return nil, err
	}

	resp, _ := result.(*resty.Response)
	return resp, nil
}
