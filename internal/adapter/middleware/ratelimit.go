package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter map before idle clients are swept.
const maxTrackedClients = 2000

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter hands every client+route its own token bucket refilling at
// limit per window, with a burst of limit.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	message string
	now     func() time.Time
}

func NewRateLimiter(limit int, window time.Duration, message string) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		message: message,
		now:     time.Now,
	}
}

func (l *RateLimiter) allow(key string) (bool, time.Duration) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[key]
	if !ok {
		if len(l.clients) >= maxTrackedClients {
			l.sweep(now)
		}
		cl = &client{lim: rate.NewLimiter(rate.Every(l.window/time.Duration(l.limit)), l.limit)}
		l.clients[key] = cl
	}
	cl.seen = now

	r := cl.lim.ReserveN(now, 1)
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return false, d
	}
	return true, 0
}

// sweep drops clients idle for a full window; their buckets are full again.
func (l *RateLimiter) sweep(now time.Time) {
	for k, cl := range l.clients {
		if now.Sub(cl.seen) >= l.window {
			delete(l.clients, k)
		}
	}
}

func (l *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, wait := l.allow(c.RealIP() + ":" + c.Path())
			if !ok {
				secs := int(wait.Seconds()) + 1
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error":   "rate_limited",
					"message": l.message,
				})
			}
			return next(c)
		}
	}
}
