// Package ratelimiter is a token bucket limiter with pluggable state.
//
// A bucket holds Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each allowed call takes one token; a call that finds the
// bucket empty is denied until the next refill.
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//	r.With(ratelimiter.Middleware(limiter, keyFunc, denied)).Post("/login", login)
//
// MemoryStore keeps state per process; several gateway instances each
// enforce their own limit.
package ratelimiter
