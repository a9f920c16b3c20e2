package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("token not found")

// SessionData is what the allow-list stores per issued token. Logout
// revokes the token before its JWT expiry.
type SessionData struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:token:%s", token)
}

func (r *TokenRepository) StoreToken(ctx context.Context, token string, data SessionData, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(token), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	return nil
}

// ValidateToken returns the stored session for a token, or
// ErrTokenNotFound when it was never issued or has been revoked.
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (SessionData, error) {
	val, err := r.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return SessionData{}, ErrTokenNotFound
		}
		return SessionData{}, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var data SessionData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return SessionData{}, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return data, nil
}

func (r *TokenRepository) RevokeToken(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}
