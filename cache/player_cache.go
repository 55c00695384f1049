package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"NoLabelPanel/model"
)

// Playback state is scoped to one moderator session and expires with it; the
// preview player has no cross-session meaning.
const playerStateTTL = 24 * time.Hour

// playerKey builds the Redis key for a session's playback state.
func playerKey(sessionID string) string {
	return fmt.Sprintf("player:%s", sessionID)
}

// SetPlaybackState stores the session's current player position.
func SetPlaybackState(ctx context.Context, sessionID string, state model.PlaybackState) error {
	if RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal playback state: %w", err)
	}

	if err := RedisClient.Set(ctx, playerKey(sessionID), data, playerStateTTL).Err(); err != nil {
		return fmt.Errorf("failed to store playback state: %w", err)
	}
	return nil
}

// GetPlaybackState returns the session's player position, or a zero state when
// nothing is playing.
func GetPlaybackState(ctx context.Context, sessionID string) (model.PlaybackState, error) {
	var state model.PlaybackState
	if RedisClient == nil {
		return state, fmt.Errorf("Redis client not initialized")
	}

	data, err := RedisClient.Get(ctx, playerKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return state, nil
		}
		return state, fmt.Errorf("failed to load playback state: %w", err)
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("failed to unmarshal playback state: %w", err)
	}
	return state, nil
}

// ClearPlaybackState stops the session's player.
func ClearPlaybackState(ctx context.Context, sessionID string) error {
	if RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}

	if err := RedisClient.Del(ctx, playerKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear playback state: %w", err)
	}
	return nil
}
