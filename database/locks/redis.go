package locks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was re-taken by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SET NX PX.
type RedisLocker struct {
	Client *redis.Client
	TTL    time.Duration // lease length; protects against crashed holders
	Wait   time.Duration // how long Acquire keeps retrying
	Retry  time.Duration // pause between attempts
	Logger *zap.Logger
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	wait := l.Wait
	if wait <= 0 {
		wait = 3 * time.Second
	}
	retry := l.Retry
	if retry <= 0 {
		retry = 25 * time.Millisecond
	}
	ttl := l.TTL
	if ttl <= 0 {
		ttl = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	token := uuid.NewString()
	for {
		ok, err := l.Client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
			}
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return l.releaser(key, token), nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		case <-time.After(retry):
		}
	}
}

func (l *RedisLocker) releaser(key, token string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.Client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			if l.Logger != nil {
				l.Logger.Warn("failed to release lock; it will expire", zap.String("key", key), zap.Error(err))
			}
		}
	}
}
