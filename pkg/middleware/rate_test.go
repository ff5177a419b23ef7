package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/soutoura/soutoura/config"
	"github.com/soutoura/soutoura/pkg/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	h := middleware.RateLimit(2, time.Minute)(okHandler())

	// Same peer rotating X-Forwarded-For must not escape its bucket.
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:41320"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if i < 2 {
			assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
		} else {
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		}
	}
}

func TestRateLimitKeysOnHostNotPort(t *testing.T) {
	h := middleware.RateLimit(1, time.Minute)(okHandler())

	// Two connections from the same host share one bucket.
	for i, code := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = fmt.Sprintf("203.0.113.8:%d", 40000+i)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, code, rec.Code, "request %d", i)
	}
}

func TestRateLimitTrustsForwardedForBehindProxy(t *testing.T) {
	config.Set("TRUST_PROXY", "true")
	t.Cleanup(func() { config.Set("TRUST_PROXY", "false") })

	h := middleware.RateLimit(1, time.Minute)(okHandler())

	// All requests arrive from the proxy address; the forwarded client
	// address is what separates the buckets.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.10:55000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d, 192.0.2.10", i))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "client %d", i)
	}
}
