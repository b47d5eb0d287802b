package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"ruru-backoffice/internal/logx"
)

type stubLimiter struct {
	allow bool
	keys  *[]string
}

func (s stubLimiter) Allow(key string) bool {
	if s.keys != nil {
		*s.keys = append(*s.keys, key)
	}
	return s.allow
}

func TestMiddleware_AllowsRequestPassesToNext(t *testing.T) {
	t.Parallel()

	nextCalled := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled++
		w.WriteHeader(http.StatusOK)
	})

	var keys []string
	h := New(logx.Nop(), nil, stubLimiter{allow: true, keys: &keys}).Handler()(next)

	r := httptest.NewRequest(http.MethodGet, "http://example/admin/couriers", nil)
	r.RemoteAddr = "1.2.3.4:5678"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, nextCalled)
	require.Equal(t, []string{"ip:1.2.3.4"}, keys)
}

func TestMiddleware_BlocksWith429AndCounts(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.FailNow(t, "next must not run")
	})
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "ratelimit_denied_total", Help: "denied requests"})
	h := New(logx.Nop(), counter, stubLimiter{allow: false}).Handler()(next)

	t.Run("json", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example/admin/couriers", nil))

		require.Equal(t, http.StatusTooManyRequests, w.Code)
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))
		require.Equal(t, "1", w.Header().Get("Retry-After"))
		require.Equal(t, `{"error":"too many requests"}`, w.Body.String())
	})

	t.Run("browser", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "http://example/admin/couriers", nil)
		r.Header.Set("Accept", "text/html,application/xhtml+xml")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		require.Equal(t, http.StatusTooManyRequests, w.Code)
		require.Equal(t, tooManyRequests, w.Body.String())
	})

	require.Equal(t, float64(2), testutil.ToFloat64(counter))
}

func TestMiddleware_WithKey(t *testing.T) {
	t.Parallel()

	var keys []string
	h := New(nil, nil, stubLimiter{allow: true, keys: &keys}, WithKey(BySessionCookie("sid"))).
		Handler()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
	r.AddCookie(&http.Cookie{Name: "sid", Value: "s-1"})
	h.ServeHTTP(httptest.NewRecorder(), r)

	require.Equal(t, []string{"session:s-1"}, keys)
}
