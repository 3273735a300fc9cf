package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter — счетчики с фиксированным окном поверх Redis. Счетчик живет ровно
// window от первого попадания и сбрасывается целиком по истечении TTL.
// Состояние разделяется всеми воркерами, локальной памяти нет.
type Limiter struct {
	client redis.UniversalClient
}

func NewLimiter(client redis.UniversalClient) *Limiter {
	return &Limiter{client: client}
}

// Hit увеличивает счетчик и возвращает новое значение; TTL выставляется
// только при первом попадании в окно
func (l *Limiter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = l.client.Expire(ctx, key, window).Err()
	}
	return count, nil
}

func (l *Limiter) Attempts(ctx context.Context, key string) (int64, error) {
	count, err := l.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}

func (l *Limiter) TooManyAttempts(ctx context.Context, key string, limit int64) (bool, error) {
	count, err := l.Attempts(ctx, key)
	if err != nil {
		return false, err
	}
	return count >= limit, nil
}

// AvailableIn возвращает время до сброса окна
func (l *Limiter) AvailableIn(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}
