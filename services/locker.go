package services

import (
	"context"
	"fmt"
	"sync"
)

// Locker serialises work on a key across concurrent requests. The returned
// function releases the lock.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

func roomLockKey(roomID uint) string {
	return fmt.Sprintf("lock:room:%d", roomID)
}

// LocalLocker is an in-process Locker. It only guards a single server instance.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]chan struct{})}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[key]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[key] = slot
	}
	l.mu.Unlock()

	select {
	case slot <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-slot }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
