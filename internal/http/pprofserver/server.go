// Package pprofserver serves runtime profiles on a separate listener.
package pprofserver

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Config holds the listener address and the basic auth pair required from
// non-loopback callers.
type Config struct {
	Addr string
	User string
	Pass string
}

// Enabled reports whether an address was configured.
func (c Config) Enabled() bool { return c.Addr != "" }

// Handler mounts the profiles under /debug/pprof/. Loopback callers pass
// without credentials; everyone else needs basic auth, and is refused when
// none is configured.
func Handler(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(localOr(basicAuth(cfg)))
	r.Mount("/debug", chimw.Profiler())
	return r
}

// New returns the profiling server for cfg.
func New(cfg Config) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           Handler(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func basicAuth(cfg Config) func(http.Handler) http.Handler {
	if cfg.User == "" || cfg.Pass == "" {
		return func(http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("WWW-Authenticate", `Basic realm="pprof"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			})
		}
	}
	return chimw.BasicAuth("pprof", map[string]string{cfg.User: cfg.Pass})
}

func localOr(guard func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		guarded := guard(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isLoopback(r.RemoteAddr) {
				next.ServeHTTP(w, r)
				return
			}
			guarded.ServeHTTP(w, r)
		})
	}
}

func isLoopback(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(strings.TrimSpace(host))
	return ip != nil && ip.IsLoopback()
}
