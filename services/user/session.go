package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ridebook/models"
	"ridebook/utils"

	"github.com/go-redis/redis/v8"
)

// SaveSession stores the session under its local key with the session TTL.
func SaveSession(client *redis.Client, localKey string, session models.Session) error {
	session.LastSeenAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, utils.AuthSessionPrefix+localKey, data, utils.AuthSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by its local key.
func GetSession(client *redis.Client, localKey string) (*models.Session, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, utils.AuthSessionPrefix+localKey).Result()
	if err != nil {
		return nil, err
	}
	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session by its local key.
func DeleteSession(client *redis.Client, localKey string) error {
	ctx := context.Background()
	return client.Del(ctx, utils.AuthSessionPrefix+localKey).Err()
}
