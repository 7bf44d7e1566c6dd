package middleware

import (
	"golang.org/x/time/rate"

	pkgLog "crashify360/pkg/log"
)

type Middleware struct {
	l       pkgLog.Logger
	limiter *rate.Limiter
}

// New creates the middleware set. rps bounds the rate-limited route group;
// a non-positive value falls back to 10 requests per second.
func New(l pkgLog.Logger, rps int) Middleware {
	if rps <= 0 {
		rps = 10
	}
	return Middleware{
		l:       l,
		limiter: rate.NewLimiter(rate.Limit(rps), rps*2),
	}
}
