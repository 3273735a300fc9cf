package ratelimit

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	emailLimit  = 3
	emailWindow = 3600 * time.Second

	ipLimit  = 10
	ipWindow = 3600 * time.Second
)

// ForgotPassword ограничивает запросы сброса пароля двумя независимыми
// счетчиками: по email получателя и по адресу отправителя запроса
func ForgotPassword(limiter *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Некорректный ввод"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var payload struct {
			Email string `json:"email"`
		}
		_ = json.Unmarshal(body, &payload)

		ctx := c.Request.Context()
		ip := c.ClientIP()
		emailKey := "forgot-password-email:" + payload.Email
		ipKey := "forgot-password-ip:" + ip

		if tooMany, err := limiter.TooManyAttempts(ctx, emailKey, emailLimit); err == nil && tooMany {
			seconds, _ := limiter.AvailableIn(ctx, emailKey)
			log.Printf("превышен лимит сброса пароля: email=%s ip=%s retry_after=%v", payload.Email, ip, seconds)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Слишком много попыток сброса пароля. Попробуйте позже",
				"retry_after": int(seconds.Seconds()),
			})
			return
		}

		if tooMany, err := limiter.TooManyAttempts(ctx, ipKey, ipLimit); err == nil && tooMany {
			seconds, _ := limiter.AvailableIn(ctx, ipKey)
			log.Printf("превышен лимит сброса пароля: email=%s ip=%s retry_after=%v", payload.Email, ip, seconds)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Слишком много попыток сброса пароля. Попробуйте позже",
				"retry_after": int(seconds.Seconds()),
			})
			return
		}

		count, err := limiter.Hit(ctx, emailKey, emailWindow)
		if err != nil {
			log.Printf("ошибка счетчика сброса пароля: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Что-то пошло не так"})
			return
		}
		if _, err := limiter.Hit(ctx, ipKey, ipWindow); err != nil {
			log.Printf("ошибка счетчика сброса пароля: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Что-то пошло не так"})
			return
		}

		remaining := emailLimit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(emailLimit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		c.Next()
	}
}
