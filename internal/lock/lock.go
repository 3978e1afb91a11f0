package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrNotAcquired = errors.New("booking lock not acquired")

// BookingLocker serializes the check-then-write of a booking so two
// near-simultaneous requests for the same practitioner cannot both pass
// the overlap check.
type BookingLocker interface {
	WithPractitionerLock(
		ctx context.Context,
		practitionerID uint,
		day time.Time,
		fn func(ctx context.Context) error,
	) error
}

type redisBookingLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBookingLocker(client *redis.Client, ttl time.Duration) BookingLocker {
	return &redisBookingLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisBookingLocker) WithPractitionerLock(
	ctx context.Context,
	practitionerID uint,
	day time.Time,
	fn func(ctx context.Context) error,
) error {

	key := fmt.Sprintf("lock:practitioner:%d:%s", practitionerID, day.Format("2006-01-02"))
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire booking lock: %w", err)
	}
	if !ok {
		return ErrNotAcquired
	}

	defer func() {
		_ = l.release(ctx, key, token)
	}()

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockCtx)
}

// unlockScript deletes the key only when it still holds our token, so an
// expired lock re-acquired by someone else is never released by us.
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisBookingLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release booking lock: %w", err)
	}
	return nil
}
