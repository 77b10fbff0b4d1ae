package server

import (
	"math"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	headerRequestID = "X-Request-ID"
	localsRequestID = "request_id"
)

// requestID tags every request with an id, reusing the client's if sent.
func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(localsRequestID, id)
		c.Set(headerRequestID, id)
		return c.Next()
	}
}

func requestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(localsRequestID).(string)
	return id
}

func accessLog(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Warn()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("request_id", requestIDFrom(c)).
			Msg("request")
		return err
	}
}

// clientIdleTTL is how long a client's bucket survives without requests.
const clientIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than clientIdleTTL are swept on the next request after the TTL elapses.
type rateLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

// newRateLimiter allows perSecond sustained requests per client; zero or
// less disables limiting.
func newRateLimiter(perSecond float64) *rateLimiter {
	if perSecond <= 0 {
		return &rateLimiter{limit: rate.Inf}
	}
	return &rateLimiter{
		limit:     rate.Limit(perSecond),
		burst:     int(math.Max(1, math.Ceil(perSecond))),
		now:       time.Now,
		clients:   make(map[string]*clientLimiter),
		lastSweep: time.Now(),
	}
}

func (r *rateLimiter) allow(key string) bool {
	if r.limit == rate.Inf {
		return true
	}

	r.mu.Lock()
	now := r.now()
	if now.Sub(r.lastSweep) > clientIdleTTL {
		r.sweep(now)
	}
	c, ok := r.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[key] = c
	}
	c.lastSeen = now
	r.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// sweep drops idle clients. Callers hold r.mu.
func (r *rateLimiter) sweep(now time.Time) {
	for key, c := range r.clients {
		if now.Sub(c.lastSeen) > clientIdleTTL {
			delete(r.clients, key)
		}
	}
	r.lastSweep = now
}

func (r *rateLimiter) handler(c *fiber.Ctx) error {
	if !r.allow(c.IP()) {
		return writeError(c, fiber.StatusTooManyRequests, "Too many requests, slow down.")
	}
	return c.Next()
}
