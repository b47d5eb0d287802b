package ratelimit

// NopLimiter allows every request. It is used when rate limiting is disabled.
type NopLimiter struct{}

// Allow always reports true.
func (NopLimiter) Allow(string) bool { return true }
