package server

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// routeLimiter applies a per-client token bucket to one route group.
// Buckets refill at limit-per-minute with a burst of the same size.
type routeLimiter struct {
	mu       sync.Mutex
	clients  map[string]*rate.Limiter
	perMin   int
	disabled bool
}

func newRouteLimiter(perMin int, enabled bool) *routeLimiter {
	return &routeLimiter{
		clients:  make(map[string]*rate.Limiter),
		perMin:   perMin,
		disabled: !enabled || perMin <= 0,
	}
}

func (rl *routeLimiter) limiterFor(clientIP string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.clients[clientIP]
	if !ok {
		l = rate.NewLimiter(rate.Limit(float64(rl.perMin)/60), rl.perMin)
		rl.clients[clientIP] = l
	}
	return l
}

// Middleware returns the echo middleware enforcing the limit.
func (rl *routeLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rl.disabled {
				return next(c)
			}
			if !rl.limiterFor(c.RealIP()).Allow() {
				return requestError{
					Status:  http.StatusTooManyRequests,
					Message: "rate limit exceeded",
				}
			}
			return next(c)
		}
	}
}
