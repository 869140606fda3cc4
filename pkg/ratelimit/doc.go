// Package ratelimit paces requests to the storage provider.
//
// TokenBucket earns one token per interval up to its capacity. Wait blocks
// until a token is available and honours context cancellation; requests are
// only ever delayed, never retried or dropped.
//
//	limiter := ratelimit.PerMinute(30) // nil when pacing is off
//	if err := limiter.Wait(ctx); err != nil {
//	    return err
//	}
package ratelimit
