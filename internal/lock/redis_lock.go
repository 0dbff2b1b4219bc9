package lock

import (
	"context"
	"time"

	"github.com/Abraxas-365/craftable/logx"
	"github.com/redis/go-redis/v9"

	"multiauth-service/internal/utils"
)

const keyPrefix = "lock:"

// releaseScript deletes the key only if this holder still owns it, so
// an expired lock taken over by another process is never released from
// here.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker on a shared Redis, so identifier
// serialization holds across service instances.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) func() {
	fullKey := keyPrefix + key
	holder := utils.RandomString(16)
	deadline := time.Now().Add(ttl)

	for {
		ok, err := l.client.SetNX(ctx, fullKey, holder, ttl).Result()
		if err != nil {
			// Redis down: skip serialization, the store's unique
			// indexes still hold
			logx.Warn("lock acquire failed, proceeding unlocked: %v", err)
			return func() {}
		}
		if ok {
			return func() {
				if _, err := releaseScript.Run(ctx, l.client, []string{fullKey}, holder).Result(); err != nil && err != redis.Nil {
					logx.Warn("lock release failed for %s: %v", fullKey, err)
				}
			}
		}

		if time.Now().After(deadline) || ctx.Err() != nil {
			return func() {}
		}
		time.Sleep(retryInterval)
	}
}
