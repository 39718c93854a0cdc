package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenRedis_Success(t *testing.T) {
	s := miniredis.RunT(t)

	c, err := OpenRedis(context.Background(), Options{Addr: s.Addr(), DB: 2})
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if got := c.Options().DB; got != 2 {
		t.Fatalf("client DB = %d, want 2", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.Set(ctx, "k", "v", 0).Err(); err != nil {
		t.Fatalf("SET err: %v", err)
	}
	if !s.DB(2).Exists("k") {
		t.Fatalf("key should land in db 2")
	}
}

func TestOpenRedis_AuthFailure(t *testing.T) {
	s := miniredis.RunT(t)
	s.RequireAuth("secret")

	if _, err := OpenRedis(context.Background(), Options{Addr: s.Addr(), Password: "wrong"}); err == nil {
		t.Fatal("expected auth error, got nil")
	}
}

func TestOpenRedis_Unreachable(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	if _, err := OpenRedis(context.Background(), Options{Addr: addr, DialTimeout: 200 * time.Millisecond}); err == nil {
		t.Fatal("expected error, got nil")
	}
}
