package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore хранит идентификаторы активных токенов пользователя в Redis,
// чтобы выход завершал сразу все сессии
type SessionStore struct {
	client redis.UniversalClient
}

func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(userID int) string {
	return fmt.Sprintf("sessions:%d", userID)
}

func (s *SessionStore) Register(ctx context.Context, userID int, jti string, ttl time.Duration) error {
	key := sessionKey(userID)
	if err := s.client.SAdd(ctx, key, jti).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, ttl).Err()
}

func (s *SessionStore) Active(ctx context.Context, userID int, jti string) (bool, error) {
	return s.client.SIsMember(ctx, sessionKey(userID), jti).Result()
}

// RevokeAll отзывает все сессии пользователя
func (s *SessionStore) RevokeAll(ctx context.Context, userID int) error {
	return s.client.Del(ctx, sessionKey(userID)).Err()
}
