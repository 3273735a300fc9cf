package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ResetStore хранит одноразовые токены сброса пароля в Redis с TTL.
// На email активен только один токен: повторный запрос заменяет прежний.
type ResetStore struct {
	client redis.UniversalClient
}

func NewResetStore(client redis.UniversalClient) *ResetStore {
	return &ResetStore{client: client}
}

func resetKey(email string) string {
	return "password-reset:" + email
}

func (s *ResetStore) Issue(ctx context.Context, email string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, resetKey(email), token, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *ResetStore) Verify(ctx context.Context, email, token string) (bool, error) {
	stored, err := s.client.Get(ctx, resetKey(email)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == token, nil
}

// Consume удаляет токен после успешного сброса
func (s *ResetStore) Consume(ctx context.Context, email string) error {
	return s.client.Del(ctx, resetKey(email)).Err()
}
