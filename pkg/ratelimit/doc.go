// Package ratelimit throttles how fast a run moves from one page pair to
// the next, for environments that should not be hit at full speed.
//
//	limiter := ratelimit.PerMinute(cfg.Capture.PairsPerMinute)
//	if err := limiter.Wait(ctx); err != nil {
//		return err
//	}
package ratelimit
