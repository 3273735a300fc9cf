package handlers

import (
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wallet-api/internal/auth"
	"github.com/valeriaulyamaeva/wallet-api/internal/database"
	"github.com/valeriaulyamaeva/wallet-api/models"
)

type createWalletRequest struct {
	Name           string            `json:"name"`
	Type           models.WalletType `json:"type"`
	Balance        decimal.Decimal   `json:"balance"`
	Currency       models.Currency   `json:"currency"`
	Institution    string            `json:"institution"`
	LastFourDigits *string           `json:"last_four_digits"`
	IsActive       *bool             `json:"is_active"`
	// user_id от клиента игнорируется, владелец берется из сессии
}

// hasTwoDecimals — у суммы не больше двух знаков после запятой
func hasTwoDecimals(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

func (r *createWalletRequest) validate() string {
	if n := utf8.RuneCountInString(r.Name); n < 5 || n > 40 {
		return "Название кошелька должно быть от 5 до 40 символов"
	}
	if !r.Type.Valid() {
		return "Неподдерживаемый тип кошелька"
	}
	if r.Balance.IsNegative() {
		return "Баланс не может быть отрицательным"
	}
	if r.Balance.GreaterThan(models.MaxWalletBalance) {
		return "Баланс превышает допустимый максимум"
	}
	if !hasTwoDecimals(r.Balance) {
		return "Баланс указывается с точностью до двух знаков"
	}
	if !r.Currency.Valid() {
		return "Неподдерживаемая валюта"
	}
	if n := utf8.RuneCountInString(r.Institution); n < 3 || n > 40 {
		return "Название организации должно быть от 3 до 40 символов"
	}
	if r.LastFourDigits != nil && utf8.RuneCountInString(*r.LastFourDigits) != 4 {
		return "Последние цифры карты должны состоять ровно из 4 символов"
	}
	return ""
}

func CreateWalletHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createWalletRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных кошелька"})
			return
		}
		if msg := req.validate(); msg != "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		wallet := &models.Wallet{
			UserID:         auth.CurrentUserID(c),
			Name:           req.Name,
			Type:           req.Type,
			Balance:        req.Balance,
			Currency:       req.Currency,
			Institution:    req.Institution,
			LastFourDigits: req.LastFourDigits,
			IsActive:       isActive,
		}
		if err := database.CreateWallet(pool, wallet); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Кошелек успешно создан", "wallet": wallet})
	}
}

func GetWalletHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор кошелька"})
			return
		}
		wallet, err := database.GetWalletForUser(pool, auth.CurrentUserID(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"wallet": wallet})
	}
}

type updateWalletRequest struct {
	models.WalletUpdate
}

func (r *updateWalletRequest) validate() string {
	if r.Name != nil {
		if n := utf8.RuneCountInString(*r.Name); n < 5 || n > 40 {
			return "Название кошелька должно быть от 5 до 40 символов"
		}
	}
	if r.Type != nil && !r.Type.Valid() {
		return "Неподдерживаемый тип кошелька"
	}
	if r.Balance != nil {
		if r.Balance.IsNegative() || r.Balance.GreaterThan(models.MaxWalletBalance) {
			return "Баланс вне допустимых границ"
		}
		if !hasTwoDecimals(*r.Balance) {
			return "Баланс указывается с точностью до двух знаков"
		}
	}
	if r.Currency != nil && !r.Currency.Valid() {
		return "Неподдерживаемая валюта"
	}
	if r.Institution != nil {
		if n := utf8.RuneCountInString(*r.Institution); n < 3 || n > 40 {
			return "Название организации должно быть от 3 до 40 символов"
		}
	}
	if r.LastFourDigits != nil && utf8.RuneCountInString(*r.LastFourDigits) != 4 {
		return "Последние цифры карты должны состоять ровно из 4 символов"
	}
	return ""
}

func UpdateWalletHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор кошелька"})
			return
		}
		var req updateWalletRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных кошелька"})
			return
		}
		if msg := req.validate(); msg != "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
			return
		}

		wallet, err := database.UpdateWallet(pool, auth.CurrentUserID(c), id, &req.WalletUpdate)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Кошелек успешно обновлен", "wallet": wallet})
	}
}

func DeleteWalletHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор кошелька"})
			return
		}
		if err := database.DeleteWallet(pool, auth.CurrentUserID(c), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Кошелек успешно удален"})
	}
}

func ActiveWalletsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallets, err := database.GetActiveWallets(pool, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"wallets": wallets})
	}
}

func ArchivedWalletsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallets, err := database.GetArchivedWallets(pool, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"wallets": wallets})
	}
}

func AllWalletsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallets, err := database.GetWalletsByUserID(pool, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"wallets": wallets})
	}
}
