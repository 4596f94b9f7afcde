package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SalonBookingService/pkg/logger"
)

type countingRecorder struct{ routes []string }

func (c *countingRecorder) RecordRateLimited(route string) { c.routes = append(c.routes, route) }

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
}

func post(h http.Handler, remote string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRedisRateLimiter_FixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	limiter := NewRedisRateLimiter(rdb, 2, time.Minute, "test:rl")
	recorder := &countingRecorder{}
	h := RateLimit(limiter, "create_booking", false, TrustedProxies{}, recorder, logger.NewNop())(okHandler())

	assert.Equal(t, http.StatusCreated, post(h, "10.0.0.1:5000"))
	assert.Equal(t, http.StatusCreated, post(h, "10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, post(h, "10.0.0.1:5002"))

	// another client has its own window
	assert.Equal(t, http.StatusCreated, post(h, "10.0.0.2:5000"))
	assert.Equal(t, []string{"create_booking"}, recorder.routes)

	require.True(t, mr.Exists("test:rl:create_booking:10.0.0.1"))
	assert.Greater(t, mr.TTL("test:rl:create_booking:10.0.0.1"), time.Duration(0))

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusCreated, post(h, "10.0.0.1:5003"))
}

func TestRateLimit_FailureModes(t *testing.T) {
	open := RateLimit(failingLimiter{}, "create_booking", true, TrustedProxies{}, &countingRecorder{}, logger.NewNop())(okHandler())
	assert.Equal(t, http.StatusCreated, post(open, "10.0.0.1:5000"))

	closed := RateLimit(failingLimiter{}, "create_booking", false, TrustedProxies{}, &countingRecorder{}, logger.NewNop())(okHandler())
	assert.Equal(t, http.StatusServiceUnavailable, post(closed, "10.0.0.1:5000"))
}

func TestLocalRateLimiter(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	limiter := NewLocalRateLimiter(3, time.Minute)
	limiter.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := limiter.Allow(ctx, "a")
	assert.False(t, ok)

	ok, _ = limiter.Allow(ctx, "b")
	assert.True(t, ok)

	// one token refills every 20 seconds
	now = now.Add(20 * time.Second)
	ok, _ = limiter.Allow(ctx, "a")
	assert.True(t, ok)
}

func postFrom(h http.Handler, remote, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	req.RemoteAddr = remote
	req.Header.Set("X-Forwarded-For", forwardedFor)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	limiter := NewLocalRateLimiter(2, time.Minute)
	h := RateLimit(limiter, "create_booking", false, TrustedProxies{}, &countingRecorder{}, logger.NewNop())(okHandler())

	// a new spoofed address per request does not buy a new budget
	assert.Equal(t, http.StatusCreated, postFrom(h, "198.51.100.9:4000", "203.0.113.1"))
	assert.Equal(t, http.StatusCreated, postFrom(h, "198.51.100.9:4001", "203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, postFrom(h, "198.51.100.9:4002", "203.0.113.3"))
}

func TestRateLimit_TrustedProxyForwardsClients(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)
	limiter := NewLocalRateLimiter(1, time.Minute)
	h := RateLimit(limiter, "create_booking", false, proxies, &countingRecorder{}, logger.NewNop())(okHandler())

	assert.Equal(t, http.StatusCreated, postFrom(h, "10.0.0.5:4000", "203.0.113.1"))
	assert.Equal(t, http.StatusCreated, postFrom(h, "10.0.0.5:4001", "203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, postFrom(h, "10.0.0.6:4002", "203.0.113.1"))
}

func TestTrustedProxies_ClientKey(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.0.2.10 ", ""})
	require.NoError(t, err)

	tests := []struct {
		name         string
		proxies      TrustedProxies
		remote       string
		forwardedFor string
		want         string
	}{
		{"no proxies configured", TrustedProxies{}, "198.51.100.9:4000", "203.0.113.7", "198.51.100.9"},
		{"untrusted peer", proxies, "198.51.100.9:4000", "203.0.113.7", "198.51.100.9"},
		{"trusted peer without header", proxies, "10.1.2.3:4000", "", "10.1.2.3"},
		{"trusted peer", proxies, "10.1.2.3:4000", "203.0.113.7", "203.0.113.7"},
		{"spoofed left hop ignored", proxies, "10.1.2.3:4000", "1.2.3.4, 203.0.113.7, 192.0.2.10", "203.0.113.7"},
		{"only proxies in chain", proxies, "192.0.2.10:4000", "10.0.0.1, 10.0.0.2", "192.0.2.10"},
		{"remote without port", proxies, "198.51.100.9", "203.0.113.7", "198.51.100.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.forwardedFor)
			}
			assert.Equal(t, tt.want, tt.proxies.ClientKey(req))
		})
	}
}

func TestParseTrustedProxies_Invalid(t *testing.T) {
	_, err := ParseTrustedProxies([]string{"10.0.0.0/33"})
	assert.Error(t, err)

	_, err = ParseTrustedProxies([]string{"proxy.local"})
	assert.Error(t, err)
}
