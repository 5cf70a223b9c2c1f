package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisJournal stores each key's attempt sequence as a JSON array of unix
// milliseconds under a single Redis string, the server-side analog of the
// original's fixed client-storage key. Entries expire on their own shortly
// after the whole window could still count them.
type RedisJournal struct {
	client *redis.Client
	prefix string
	window time.Duration
}

// NewRedisJournal creates a journal over the given client.
func NewRedisJournal(client *redis.Client, prefix string, window time.Duration) *RedisJournal {
	if prefix == "" {
		prefix = "ratelimit:"
	}
	if window <= 0 {
		window = 30 * time.Minute
	}
	return &RedisJournal{client: client, prefix: prefix, window: window}
}

func (j *RedisJournal) Load(ctx context.Context, key string) ([]time.Time, error) {
	raw, err := j.client.Get(ctx, j.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var millis []int64
	if err := json.Unmarshal([]byte(raw), &millis); err != nil {
		// A corrupt journal only widens the caller's quota; start over.
		return nil, nil
	}
	attempts := make([]time.Time, 0, len(millis))
	for _, ms := range millis {
		attempts = append(attempts, time.UnixMilli(ms))
	}
	return attempts, nil
}

func (j *RedisJournal) Save(ctx context.Context, key string, attempts []time.Time) error {
	if len(attempts) == 0 {
		return j.client.Del(ctx, j.prefix+key).Err()
	}

	millis := make([]int64, 0, len(attempts))
	for _, t := range attempts {
		millis = append(millis, t.UnixMilli())
	}
	raw, err := json.Marshal(millis)
	if err != nil {
		return err
	}
	return j.client.Set(ctx, j.prefix+key, raw, j.window+time.Minute).Err()
}
