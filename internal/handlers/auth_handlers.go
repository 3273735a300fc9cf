package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-api/internal/auth"
	"github.com/valeriaulyamaeva/wallet-api/internal/database"
	"github.com/valeriaulyamaeva/wallet-api/internal/mailer"
	"github.com/valeriaulyamaeva/wallet-api/models"
)

const resetTokenTTL = time.Hour

// AuthHandler объединяет зависимости операций регистрации, входа и
// сброса пароля
type AuthHandler struct {
	Pool      *pgxpool.Pool
	Sessions  *auth.SessionStore
	Resets    *auth.ResetStore
	Mailer    *mailer.Mailer
	JWTSecret []byte
	TokenTTL  time.Duration
}

func (h *AuthHandler) issueToken(c *gin.Context, userID int) (string, error) {
	token, jti, err := auth.GenerateToken(userID, h.JWTSecret, h.TokenTTL)
	if err != nil {
		return "", err
	}
	if err := h.Sessions.Register(c.Request.Context(), userID, jti, h.TokenTTL); err != nil {
		return "", err
	}
	return token, nil
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных. Проверьте введённые значения."})
		return
	}
	if req.Name == "" || req.Email == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Имя и email обязательны"})
		return
	}
	if utf8.RuneCountInString(req.Password) < 8 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Пароль должен быть не короче 8 символов"})
		return
	}

	user := &models.User{Name: req.Name, Email: req.Email, Password: req.Password}
	if err := database.RegisterUser(h.Pool, user); err != nil {
		respondError(c, err)
		return
	}

	token, err := h.issueToken(c, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Пользователь успешно зарегистрирован",
		"user":    user,
		"token":   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ошибка ввода данных"})
		return
	}

	user, err := database.AuthenticateUser(h.Pool, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверный email или пароль"})
		return
	}

	token, err := h.issueToken(c, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Авторизация успешна",
		"user":    user,
		"token":   token,
	})
}

// Logout завершает все активные сессии пользователя
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Sessions.RevokeAll(c.Request.Context(), auth.CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Выход выполнен"})
}

// ForgotPassword вызывается за rate-limit middleware; лимиты и заголовки
// X-RateLimit-* выставляются там
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не указан email"})
		return
	}

	if _, err := database.GetUserByEmail(h.Pool, req.Email); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Пользователь с таким email не найден"})
			return
		}
		respondError(c, err)
		return
	}

	token, err := h.Resets.Issue(c.Request.Context(), req.Email, resetTokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Mailer.SendResetLink(req.Email, token); err != nil {
		log.Printf("ошибка отправки ссылки сброса пароля: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось отправить письмо"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ссылка для сброса пароля отправлена на почту"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ввод"})
		return
	}
	if utf8.RuneCountInString(req.Password) < 8 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Пароль должен быть не короче 8 символов"})
		return
	}

	ok, err := h.Resets.Verify(c.Request.Context(), req.Email, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Недействительный токен сброса пароля"})
		return
	}

	user, err := database.GetUserByEmail(h.Pool, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := database.UpdateUserPassword(h.Pool, user.ID, req.Password); err != nil {
		respondError(c, err)
		return
	}

	// Токен одноразовый, старые сессии после смены пароля недействительны
	_ = h.Resets.Consume(c.Request.Context(), req.Email)
	_ = h.Sessions.RevokeAll(c.Request.Context(), user.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Пароль успешно изменен"})
}

func (h *AuthHandler) ChangeName(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Не указано имя"})
		return
	}
	if err := database.ChangeUserName(h.Pool, auth.CurrentUserID(c), req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Имя успешно обновлено"})
}
