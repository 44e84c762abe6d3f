// Package redis caches the latest known status of each order so status
// polling does not hit the database.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"jewelryorders/internal/core/domain/model/kernel"
	"jewelryorders/internal/core/domain/model/order"

	"github.com/redis/go-redis/v9"
)

// KeyOrderStatus is the hash holding one order's cached status.
const KeyOrderStatus = "order_status:%s"

// setIfNewer keeps the entry with the latest change time, so a slow writer
// cannot overwrite a newer status.
var setIfNewer = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'at')
if current and tonumber(current) > tonumber(ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[1], 'status', ARGV[1], 'at', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

type client interface {
	redis.Scripter
	HGet(ctx context.Context, key, field string) *redis.StringCmd
}

// StatusCache implements ports.StatusCache.
type StatusCache struct {
	rdb client
	ttl time.Duration
}

func NewStatusCache(rdb client, ttl time.Duration) *StatusCache {
	return &StatusCache{rdb: rdb, ttl: ttl}
}

// NewClient opens a client for addr. The connection is lazy.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func key(id kernel.UUID) string {
	return fmt.Sprintf(KeyOrderStatus, id.String())
}

func (c *StatusCache) Set(ctx context.Context, id kernel.UUID, status order.Status, at time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	err := setIfNewer.Run(ctx, c.rdb, []string{key(id)},
		status.String(), at.UnixNano(), c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("cache status of order %s: %w", id, err)
	}
	return nil
}

func (c *StatusCache) Get(ctx context.Context, id kernel.UUID) (order.Status, bool, error) {
	raw, err := c.rdb.HGet(ctx, key(id), "status").Result()
	if errors.Is(err, redis.Nil) {
		return order.Unknown, false, nil
	}
	if err != nil {
		return order.Unknown, false, fmt.Errorf("read cached status of order %s: %w", id, err)
	}

	status, err := order.ParseStatus(raw)
	if err != nil {
		return order.Unknown, false, err
	}
	return status, true, nil
}

// ChangedAt returns the change time stored with the cached status.
func (c *StatusCache) ChangedAt(ctx context.Context, id kernel.UUID) (time.Time, bool, error) {
	raw, err := c.rdb.HGet(ctx, key(id), "at").Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(0, nanos).UTC(), true, nil
}
