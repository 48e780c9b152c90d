package storage

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// Runs against a real Redis when REDIS_TEST_ADDR is set.
func TestRedisLocker(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := InitializeRedis(addr, "")
	defer client.Close()

	ctx := context.Background()
	key := "lock:room:test"
	client.Del(ctx, key)

	locker := NewRedisLocker(client)
	locker.Wait = 200 * time.Millisecond
	locker.Retry = 20 * time.Millisecond

	unlock, err := locker.Lock(ctx, key)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if _, err := locker.Lock(ctx, key); !errors.Is(err, ErrLockTimeout) {
		t.Fatalf("expected ErrLockTimeout while held, got %v", err)
	}
	unlock()

	again, err := locker.Lock(ctx, key)
	if err != nil {
		t.Fatalf("relock after release: %v", err)
	}
	again()
}
