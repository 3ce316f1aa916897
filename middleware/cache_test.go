package middleware

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKeySortsQueryParams(t *testing.T) {
	a := cacheKey("/api/classes", "page=2&limit=10")
	b := cacheKey("/api/classes", "limit=10&page=2")
	assert.Equal(t, a, b)

	assert.Equal(t, "/api/classes", cacheKey("/api/classes", ""))
	assert.NotEqual(t, cacheKey("/api/classes", "page=1"), cacheKey("/api/classes", "page=2"))
}

func TestCacheEntriesExpireByTTL(t *testing.T) {
	rc := NewResponseCache(10, 20*time.Millisecond)
	rc.set("/k", cacheEntry{body: []byte(`{"ok":true}`), contentType: "application/json", storedAt: time.Now()})

	_, ok := rc.get("/k")
	assert.True(t, ok)

	time.Sleep(30 * time.Millisecond)

	_, ok = rc.get("/k")
	assert.False(t, ok)
	assert.Equal(t, 0, rc.Len())
}

func TestCacheEvictsOldestWhenOverCapacity(t *testing.T) {
	rc := NewResponseCache(20, time.Minute)

	base := time.Now().Add(-time.Second)
	for i := 0; i < 21; i++ {
		rc.set(fmt.Sprintf("/k%d", i), cacheEntry{
			body:     []byte("x"),
			storedAt: base.Add(time.Duration(i) * time.Millisecond),
		})
	}

	// 21 entries over a cap of 20 drops the oldest 10% (2 entries).
	assert.Equal(t, 19, rc.Len())
	_, ok := rc.get("/k0")
	assert.False(t, ok)
	_, ok = rc.get("/k20")
	assert.True(t, ok)
}

func TestCacheClear(t *testing.T) {
	rc := NewResponseCache(10, time.Minute)
	rc.set("/a", cacheEntry{storedAt: time.Now()})
	rc.set("/b", cacheEntry{storedAt: time.Now()})

	rc.Clear()
	assert.Equal(t, 0, rc.Len())
}

func TestCacheHandlerServesSecondGetFromCache(t *testing.T) {
	rc := NewResponseCache(10, time.Minute)

	hits := 0
	app := fiber.New()
	app.Use(rc.Handler())
	app.Get("/classes", func(c *fiber.Ctx) error {
		hits++
		return c.JSON(fiber.Map{"hits": hits})
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/classes", nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"hits":1}`, string(body))
	}
	assert.Equal(t, 1, hits)
}

func TestCacheHandlerBypassesAuthorizedRequests(t *testing.T) {
	rc := NewResponseCache(10, time.Minute)

	hits := 0
	app := fiber.New()
	app.Use(rc.Handler())
	app.Get("/me", func(c *fiber.Ctx) error {
		hits++
		return c.JSON(fiber.Map{"hits": hits})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer token")
		_, err := app.Test(req)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, hits)
	assert.Equal(t, 0, rc.Len())
}

func TestCacheHandlerSkipsNonGetAndErrors(t *testing.T) {
	rc := NewResponseCache(10, time.Minute)

	app := fiber.New()
	app.Use(rc.Handler())
	app.Post("/classes", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"created": true})
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": false})
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/classes", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
	require.NoError(t, err)

	assert.Equal(t, 0, rc.Len())
}
