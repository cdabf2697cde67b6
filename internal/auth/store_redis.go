// Copyright (c) 2026 Inkwell. All rights reserved.

package auth

import (
	stdctx "context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell-dev/inkwell/internal/platform/apperr"
	"github.com/inkwell-dev/inkwell/internal/platform/constants"
)

// # Session Store

// RedisSessionStore implements [SessionStore] using Redis.
//
// Each entry lives under constants.RedisPrefixSession + sessionKey and holds
// the encoded identity token. Redis's native TTL is the single source of
// session expiry: no sweeper process, no expiresat column.
type RedisSessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed [SessionStore].
func NewSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func sessionKey(key string) string {
	return constants.RedisPrefixSession + key
}

/*
Set stores a session entry with its encoded token and TTL.

Parameters:
  - context: context.Context
  - key: string (opaque cookie value)
  - token: string (encoded identity)
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (store *RedisSessionStore) Set(context stdctx.Context, key string, token string, ttl time.Duration) error {
	if err := store.client.Set(context, sessionKey(key), token, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves the encoded token for a given session key.

Description: Returns apperr.NotFound if the entry is absent or its TTL has
elapsed. Callers treat both the same: the session no longer exists.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - string: Encoded identity token
  - error: apperr.NotFound or connectivity errors
*/
func (store *RedisSessionStore) Get(context stdctx.Context, key string) (string, error) {
	token, err := store.client.Get(context, sessionKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Session")
		}
		return "", fmt.Errorf("redis_session_get_failed: %w", err)
	}
	return token, nil
}

/*
Delete removes the session entry from Redis.

Description: Deleting a key that already expired is a no-op, which makes
logout naturally idempotent.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - error: Deletion failures
*/
func (store *RedisSessionStore) Delete(context stdctx.Context, key string) error {
	if err := store.client.Del(context, sessionKey(key)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
