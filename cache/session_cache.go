package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"NoLabelPanel/core/auth"
)

// Sessions live exactly as long as the bearer tokens issued for them.
const sessionTTL = 24 * time.Hour

// sessionKey builds the Redis key for an authorized session.
func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// StoreSession saves an authorized session so logout can later revoke its
// upstream access token.
func StoreSession(ctx context.Context, session *auth.Session) error {
	if RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := RedisClient.Set(ctx, sessionKey(session.ID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// GetSession loads an authorized session, or (nil, nil) when it has expired.
func GetSession(ctx context.Context, sessionID string) (*auth.Session, error) {
	if RedisClient == nil {
		return nil, fmt.Errorf("Redis client not initialized")
	}

	data, err := RedisClient.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	session := &auth.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session, nil
}

// DeleteSession forgets an authorized session.
func DeleteSession(ctx context.Context, sessionID string) error {
	if RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}

	if err := RedisClient.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
