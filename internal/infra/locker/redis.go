package locker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
)

// RedisLocker блокировка слота через SET NX с уникальным токеном владельца.
// Используется, когда сервис запущен в нескольких экземплярах.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisLocker creates a locker that uses a per slot Redis key
func NewRedisLocker(client *redis.Client, ttl time.Duration, prefix string) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		prefix: prefix,
	}
}

// WithSlotLock не ждёт освобождения: если ключ занят, сразу возвращает ErrLockNotAcquired
func (l *RedisLocker) WithSlotLock(ctx context.Context, key domain.SlotKey, fn func(ctx context.Context) error) error {
	redisKey := l.key(key)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAcquire, err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(context.WithoutCancel(ctx), redisKey, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

func (l *RedisLocker) key(key domain.SlotKey) string {
	return fmt.Sprintf("%slock:slot:%s", l.prefix, key.String())
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *RedisLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release slot lock: %w", err)
	}
	return nil
}
