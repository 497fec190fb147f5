package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func breakerConfig(maxFailures uint32) Config {
	cfg := DefaultConfig()
	cfg.BreakerEnabled = true
	cfg.MaxFailures = maxFailures
	return cfg
}

func breakerState(c *Client, host string) gobreaker.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cb, ok := c.breakers[host]; ok {
		return cb.State()
	}
	return gobreaker.StateClosed
}

func breakerCounts(c *Client, host string) gobreaker.Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cb, ok := c.breakers[host]; ok {
		return cb.Counts()
	}
	return gobreaker.Counts{}
}

func failN(c *Client, host string, n int) {
	for i := 0; i < n; i++ {
		_, _ = c.ExecuteWithBreaker(host, func() (*resty.Response, error) {
			return nil, errors.New("failure")
		})
	}
}

func TestClientCircuitBreaker(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		c := NewClient()
		failN(c, "a.example", 50)

		_, err := c.ExecuteWithBreaker("a.example", func() (*resty.Response, error) {
			return nil, nil
		})
		assert.NoError(t, err)
		assert.Equal(t, gobreaker.StateClosed, breakerState(c, "a.example"))
		assert.Zero(t, breakerCounts(c, "a.example").Requests)
	})

	t.Run("execute with breaker passes through results", func(t *testing.T) {
		c := New(breakerConfig(10))

		resp, err := c.ExecuteWithBreaker("a.example", func() (*resty.Response, error) {
			return nil, nil
		})
		require.NoError(t, err)
		assert.Nil(t, resp)

		testErr := errors.New("test error")
		resp, err = c.ExecuteWithBreaker("a.example", func() (*resty.Response, error) {
			return nil, testErr
		})
		assert.Equal(t, testErr, err)
		assert.Nil(t, resp)

		counts := breakerCounts(c, "a.example")
		assert.Equal(t, uint32(1), counts.TotalSuccesses)
		assert.Equal(t, uint32(1), counts.TotalFailures)
	})

	t.Run("opens after consecutive failures", func(t *testing.T) {
		c := New(breakerConfig(3))
		failN(c, "a.example", 3)
		assert.Equal(t, gobreaker.StateOpen, breakerState(c, "a.example"))

		_, err := c.ExecuteWithBreaker("a.example", func() (*resty.Response, error) {
			return nil, nil
		})
		assert.ErrorIs(t, err, ErrBreakerOpen)
	})

	t.Run("hosts are isolated", func(t *testing.T) {
		c := New(breakerConfig(3))
		failN(c, "a.example", 10)
		require.Equal(t, gobreaker.StateOpen, breakerState(c, "a.example"))

		called := false
		_, err := c.ExecuteWithBreaker("b.example", func() (*resty.Response, error) {
			called = true
			return nil, nil
		})
		assert.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, gobreaker.StateClosed, breakerState(c, "b.example"))
	})

	t.Run("tracked hosts are bounded", func(t *testing.T) {
		c := New(breakerConfig(3))
		for i := 0; i < maxBreakers+10; i++ {
			_, _ = c.ExecuteWithBreaker(fmt.Sprintf("host-%d.example", i), func() (*resty.Response, error) {
				return nil, nil
			})
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		assert.LessOrEqual(t, len(c.breakers), maxBreakers)
	})
}

func TestClientRateLimiting(t *testing.T) {
	t.Run("limited client still issues requests", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RateLimit = 10
		c := New(cfg)

		req, err := c.Request(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, req)
	})

	t.Run("context cancellation prevents request", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RateLimit = 1
		c := New(cfg)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		req, err := c.Request(ctx)
		assert.Error(t, err)
		assert.Nil(t, req)
	})
}

func TestClientSingleAttempt(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "Faleproxy/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.Timeout = 5 * time.Second
	c := New(cfg)

	req, err := c.Request(context.Background())
	require.NoError(t, err)

	resp, err := c.ExecuteWithBreaker(server.Listener.Addr().String(), func() (*resty.Response, error) {
		return req.Get(server.URL)
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode())
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
