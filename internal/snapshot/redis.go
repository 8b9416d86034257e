package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisSlots struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis returns slots stored as plain Redis string values under
// "cart:<owner>". A zero ttl keeps snapshots until explicitly erased.
func NewRedis(client *redis.Client, ttl time.Duration) Slots {
	return &redisSlots{client: client, ttl: ttl}
}

func (s *redisSlots) For(ownerKey string) Slot {
	return &redisSlot{slots: s, key: "cart:" + ownerKey}
}

type redisSlot struct {
	slots *redisSlots
	key   string
}

func (s *redisSlot) Read(ctx context.Context) ([]byte, bool, error) {
	data, err := s.slots.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (s *redisSlot) Write(ctx context.Context, data []byte) error {
	return s.slots.client.Set(ctx, s.key, data, s.slots.ttl).Err()
}

func (s *redisSlot) Erase(ctx context.Context) error {
	return s.slots.client.Del(ctx, s.key).Err()
}
