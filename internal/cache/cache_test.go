package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestMemoryCacheGetSetDelete(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); !IsMiss(err) {
		t.Fatalf("Get(missing) err = %v, want a miss", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get(k) = (%q, %v), want (\"v\", nil)", got, err)
	}

	ok, err := c.Exists(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Exists(k) = (%v, %v), want (true, nil)", ok, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !IsMiss(err) {
		t.Fatalf("Get after Delete err = %v, want a miss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := c.Get(ctx, "k"); !IsMiss(err) {
		t.Fatalf("Get of expired key err = %v, want a miss", err)
	}
}

func TestRedisCacheAgainstMiniredis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisCacheWithClient(client, DefaultConfig())
	defer c.Close()
	ctx := context.Background()

	if _, err := c.Get(ctx, "k"); !IsMiss(err) {
		t.Fatalf("Get(missing) err = %v, want a miss", err)
	}
	if err := c.Set(ctx, "k", []byte("tokens"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != "tokens" {
		t.Fatalf("Get(k) = (%q, %v), want (\"tokens\", nil)", got, err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := c.Get(ctx, "k"); !IsMiss(err) {
		t.Fatalf("Get after Clear err = %v, want a miss", err)
	}
}

func TestKeyForSourceIsStable(t *testing.T) {
	a := KeyForSource("let x = 1;")
	b := KeyForSource("let x = 1;")
	if a != b {
		t.Fatalf("KeyForSource is not stable: %q != %q", a, b)
	}
	if a == KeyForSource("let x = 2;") {
		t.Fatalf("KeyForSource collided on different sources")
	}
}
