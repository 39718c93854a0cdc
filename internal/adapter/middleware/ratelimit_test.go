package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_AllowsBurstThenBlocks(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	l := NewRateLimiter(3, time.Minute, "slow down")
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if ok, _ := l.allow("1.2.3.4:/login"); !ok {
			t.Fatalf("attempt %d should pass", i+1)
		}
	}
	ok, wait := l.allow("1.2.3.4:/login")
	if ok || wait <= 0 {
		t.Fatalf("4th attempt should be limited, ok=%v wait=%v", ok, wait)
	}
	if ok, _ := l.allow("5.6.7.8:/login"); !ok {
		t.Fatalf("other clients keep their own budget")
	}

	now = now.Add(20 * time.Second)
	if ok, _ := l.allow("1.2.3.4:/login"); !ok {
		t.Fatalf("one token refills every window/limit")
	}
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	l := NewRateLimiter(30, 5*time.Minute, "")
	l.now = func() time.Time { return now }

	for i := 0; i < maxTrackedClients; i++ {
		l.allow(fmt.Sprintf("10.0.%d.%d:/login", i/256, i%256))
	}
	now = now.Add(6 * time.Minute)
	l.allow("fresh:/login")

	if got := len(l.clients); got != 1 {
		t.Fatalf("tracked clients = %d, want 1 after sweep", got)
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	e := echo.New()
	l := NewRateLimiter(1, time.Minute, "Too many authentication attempts. Try again shortly.")
	e.POST("/api/auth/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, l.Middleware())

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	if rec := send(); rec.Code != http.StatusOK {
		t.Fatalf("first status = %d", rec.Code)
	}
	rec := send()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After")
	}
}
