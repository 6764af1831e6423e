package msg

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Dedupe tracks processed broker offsets in Redis so redelivered
// messages are dropped before they reach a handler. Offsets are marked
// only after the handler succeeds; a crash mid-handling leaves the key
// unset and the redelivery is processed again, which the handlers'
// state-conditional writes tolerate.
type Dedupe struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDedupe(rdb *redis.Client, ttl time.Duration) *Dedupe {
	return &Dedupe{rdb: rdb, ttl: ttl}
}

func (d *Dedupe) Key(topic string, partition int, offset int64) string {
	return fmt.Sprintf("dedupe:%s:%d:%d", topic, partition, offset)
}

func (d *Dedupe) Seen(ctx context.Context, key string) (bool, error) {
	n, err := d.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *Dedupe) Mark(ctx context.Context, key string) error {
	return d.rdb.Set(ctx, key, "1", d.ttl).Err()
}
