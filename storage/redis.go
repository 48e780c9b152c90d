package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var Redis *redis.Client

func InitializeRedis(addr, password string) *redis.Client {
	if addr == "" {
		addr = "localhost:6379"
		log.Println("REDIS_URL not set, using localhost:6379 (development mode)")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	log.Println("Redis initialized with address:", addr)
	return Redis
}

var ErrLockTimeout = errors.New("timed out waiting for lock")

// releaseScript deletes the key only if this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker is a services.Locker shared by every server instance using the
// same Redis. Locks expire after TTL so a crashed holder cannot block a room.
type RedisLocker struct {
	client *redis.Client
	TTL    time.Duration
	Wait   time.Duration
	Retry  time.Duration
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		client: client,
		TTL:    15 * time.Second,
		Wait:   5 * time.Second,
		Retry:  50 * time.Millisecond,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.Wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.TTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// Release even when the request context is already cancelled.
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
					log.Printf("[warn] failed to release lock %s: %v", key, err)
				}
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.Retry):
		}
	}
}
