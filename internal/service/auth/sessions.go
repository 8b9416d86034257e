package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore issues and resolves opaque session tokens.
type SessionStore interface {
	Issue(ctx context.Context, customerID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type redisSessions struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessions stores sessions under "session:<token>" with the
// given TTL.
func NewRedisSessions(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessions{client: client, ttl: ttl}
}

func (s *redisSessions) Issue(ctx context.Context, customerID string) (string, error) {
	token, err := randomToken()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, "session:"+token, customerID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisSessions) Resolve(ctx context.Context, token string) (string, error) {
	customerID, err := s.client.Get(ctx, "session:"+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	return customerID, nil
}

func (s *redisSessions) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, "session:"+token).Err()
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
