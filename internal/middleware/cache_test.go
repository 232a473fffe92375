package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/config"
)

func doCached(t *testing.T, mw echo.MiddlewareFunc, target string, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/restaurants")
	if err := mw(handler)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestRedisCacheServesSecondRequestFromCache(t *testing.T) {
	cfg := config.CacheConfig{
		Enabled:      true,
		TTL:          time.Minute,
		Prefix:       "cache-test",
		MaxBodyBytes: 1 << 20,
	}
	mw := NewRedisCache(cfg, newTestRedis(t))

	calls := 0
	handler := func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"restaurants": []string{"Pergola"}})
	}

	first := doCached(t, mw, "/api/restaurants", handler)
	if first.Code != http.StatusOK {
		t.Fatalf("first: status = %d", first.Code)
	}
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Fatalf("first: X-Cache = %q, want MISS", got)
	}

	second := doCached(t, mw, "/api/restaurants", handler)
	if second.Code != http.StatusOK {
		t.Fatalf("second: status = %d", second.Code)
	}
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Fatalf("second: X-Cache = %q, want HIT", got)
	}
	if calls != 1 {
		t.Fatalf("handler called %d times, want 1", calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("cached body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
}

func TestRedisCacheKeyVariesByQuery(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache-test", MaxBodyBytes: 1 << 20}
	mw := NewRedisCache(cfg, newTestRedis(t))

	calls := 0
	handler := func(c echo.Context) error {
		calls++
		return c.String(http.StatusOK, c.QueryParam("name"))
	}

	doCached(t, mw, "/api/restaurants?name=pizza", handler)
	doCached(t, mw, "/api/restaurants?name=sushi", handler)
	if calls != 2 {
		t.Fatalf("handler called %d times, want 2 (distinct queries)", calls)
	}
}

func TestRedisCacheSkipsErrorResponses(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache-test", MaxBodyBytes: 1 << 20}
	mw := NewRedisCache(cfg, newTestRedis(t))

	calls := 0
	handler := func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "boom"})
	}

	doCached(t, mw, "/api/restaurants", handler)
	doCached(t, mw, "/api/restaurants", handler)
	if calls != 2 {
		t.Fatalf("handler called %d times, want 2 (500s are not cached)", calls)
	}
}
