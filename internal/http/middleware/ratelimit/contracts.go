package ratelimit

import "net/http"

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// KeyFunc derives the limiter key of a request.
type KeyFunc func(r *http.Request) string
