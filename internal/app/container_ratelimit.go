package app

import (
	"go.uber.org/dig"

	"ruru-backoffice/internal/config"
	"ruru-backoffice/internal/http/middleware/ratelimit"
	"ruru-backoffice/internal/logx"
	"ruru-backoffice/internal/metrics"
)

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketLimiter(clock, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Metrics *metrics.Set
	Limiter ratelimit.Limiter
	Config  *config.Config
}

// newRateLimitMiddleware limits admin routes per session cookie, falling back
// to the client address before sign-in.
func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Metrics.RateLimitExceeded, in.Limiter,
		ratelimit.WithKey(ratelimit.BySessionCookie(in.Config.Session.CookieName)))
}
