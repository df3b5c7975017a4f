package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestNewRedisCacheConfigErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := NewRedisCache(ctx, RedisConfig{}); err == nil {
		t.Error("expected error without url or address")
	}
	if _, err := NewRedisCache(ctx, RedisConfig{URL: "http://localhost"}); err == nil {
		t.Error("expected error for non-redis url")
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = 100 * time.Millisecond })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

// TestRedisCache runs against a live server when WORDGRAPH_TEST_REDIS_URL is
// set, e.g. redis://localhost:6379/15.
func TestRedisCache(t *testing.T) {
	url := os.Getenv("WORDGRAPH_TEST_REDIS_URL")
	if url == "" {
		t.Skip("WORDGRAPH_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{URL: url, Prefix: "wordgraph-test:"})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	key := t.Name()
	defer c.Delete(ctx, key)

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("fresh key: hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("svg"), time.Minute); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "svg" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("deleted key should miss")
	}
}
