package ratelimit

import "time"

// Clock is the time source of TokenBucketLimiter.
type Clock interface {
	Now() time.Time
}

// RealClock reads wall time.
type RealClock struct{}

// Now returns time.Now.
func (RealClock) Now() time.Time { return time.Now() }
