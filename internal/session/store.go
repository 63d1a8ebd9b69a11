// Package session keeps a server-side registry of live sessions in Redis,
// so logout invalidates a token before its JWT expiry.
package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type Store struct {
	rdb *redis.Client
}

// NewRedis creates a Redis client for the configured address.
func NewRedis(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Create registers a session id for a user with the token's lifetime.
func (s *Store) Create(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, keyPrefix+sessionID, userID, ttl).Err()
}

// Destroy removes a session. Destroying a session that does not exist is
// fine; DEL on a missing key is a no-op.
func (s *Store) Destroy(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, keyPrefix+sessionID).Err()
}

// Exists reports whether the session is still live.
func (s *Store) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
