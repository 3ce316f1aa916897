package middleware

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

type rateWindow struct {
	count       int
	windowStart time.Time
}

// RateLimiter counts requests per client IP over a fixed window. Counters
// reset on window rollover; state lives in the limiter itself, not on any
// shared application object.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateWindow
	limit   int
	window  time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*rateWindow),
		limit:   limit,
		window:  window,
	}
}

// Allow records one request for the client and reports whether it is within
// the limit for the current window.
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.clients[clientIP]
	if !ok || now.Sub(w.windowStart) > rl.window {
		rl.clients[clientIP] = &rateWindow{count: 1, windowStart: now}
		return true
	}

	w.count++
	return w.count <= rl.limit
}

// Handler returns the fiber middleware enforcing the limit.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if !rl.Allow(ip) {
			log.Printf("Rate limit exceeded for IP %s", ip)
			return JsonResponse(c, fiber.StatusTooManyRequests, false, "Rate limit exceeded. Please try again later.", nil)
		}
		return c.Next()
	}
}
