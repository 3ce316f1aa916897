package middleware

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

type cacheEntry struct {
	body        []byte
	contentType string
	storedAt    time.Time
}

// ResponseCache is a process-local read-through cache for anonymous GET
// requests. It is never invalidated on writes; entries age out via TTL and
// oldest-first eviction when the cache grows past its size cap. Its only
// reset boundary is a process restart.
type ResponseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	maxSize int
	ttl     time.Duration
}

func NewResponseCache(maxSize int, ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		entries: make(map[string]cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// key builds the cache key from the path and the sorted query string so that
// parameter order does not fragment the cache.
func cacheKey(path string, query string) string {
	if query == "" {
		return path
	}
	parts := strings.Split(query, "&")
	sort.Strings(parts)
	return path + "?" + strings.Join(parts, "&")
}

func (rc *ResponseCache) get(key string) (cacheEntry, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	entry, ok := rc.entries[key]
	if !ok {
		return cacheEntry{}, false
	}
	if time.Since(entry.storedAt) >= rc.ttl {
		delete(rc.entries, key)
		return cacheEntry{}, false
	}
	return entry, true
}

func (rc *ResponseCache) set(key string, entry cacheEntry) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.entries[key] = entry

	if len(rc.entries) <= rc.maxSize {
		return
	}

	// Over capacity: drop the oldest 10% of entries.
	type aged struct {
		key      string
		storedAt time.Time
	}
	all := make([]aged, 0, len(rc.entries))
	for k, e := range rc.entries {
		all = append(all, aged{k, e.storedAt})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].storedAt.Before(all[j].storedAt) })

	drop := rc.maxSize / 10
	if drop < 1 {
		drop = 1
	}
	for i := 0; i < drop && i < len(all); i++ {
		delete(rc.entries, all[i].key)
	}
}

// Len reports the current number of cached entries.
func (rc *ResponseCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.entries)
}

// Clear drops every cached entry.
func (rc *ResponseCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries = make(map[string]cacheEntry)
}

// Handler returns the fiber middleware. Only successful anonymous GET
// responses are cached; any Authorization header bypasses the cache entirely.
func (rc *ResponseCache) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}
		if c.Get("Authorization") != "" {
			return c.Next()
		}

		key := cacheKey(c.Path(), string(c.Request().URI().QueryString()))

		if entry, ok := rc.get(key); ok {
			c.Set(fiber.HeaderContentType, entry.contentType)
			return c.Status(fiber.StatusOK).Send(entry.body)
		}

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			rc.set(key, cacheEntry{
				body:        body,
				contentType: string(c.Response().Header.ContentType()),
				storedAt:    time.Now(),
			})
		}

		return nil
	}
}
