package handlers

import (
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wallet-api/internal/auth"
	"github.com/valeriaulyamaeva/wallet-api/internal/database"
	"github.com/valeriaulyamaeva/wallet-api/models"
)

const dateLayout = "2006-01-02"

type createTransactionRequest struct {
	WalletID    int                    `json:"wallet_id"`
	CategoryID  int                    `json:"category_id"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        models.TransactionType `json:"type"`
	Merchant    *string                `json:"merchant"`
	Description *string                `json:"description"`
	Date        string                 `json:"transaction_date"`
}

func (r *createTransactionRequest) validate() (time.Time, string) {
	if r.WalletID <= 0 {
		return time.Time{}, "Не указан кошелек"
	}
	if r.CategoryID <= 0 {
		return time.Time{}, "Не указана категория"
	}
	if !r.Amount.IsPositive() {
		return time.Time{}, "Сумма должна быть положительной"
	}
	if r.Amount.GreaterThan(models.MaxTransactionAmount) {
		return time.Time{}, "Сумма превышает допустимый максимум"
	}
	if !hasTwoDecimals(r.Amount) {
		return time.Time{}, "Сумма указывается с точностью до двух знаков"
	}
	if !r.Type.Valid() {
		return time.Time{}, "Неподдерживаемый тип транзакции"
	}
	if r.Merchant != nil && utf8.RuneCountInString(*r.Merchant) > 255 {
		return time.Time{}, "Название продавца не должно превышать 255 символов"
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > 655 {
		return time.Time{}, "Описание не должно превышать 655 символов"
	}

	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return time.Time{}, "Дата транзакции должна быть в формате ГГГГ-ММ-ДД"
	}
	if r.Date > time.Now().Format(dateLayout) {
		return time.Time{}, "Дата транзакции не может быть в будущем"
	}
	return date, ""
}

// CreateTransactionHandler проводит транзакцию и применяет эффект к балансу
// кошелька как одно целое
func CreateTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат транзакции"})
			return
		}
		date, msg := req.validate()
		if msg != "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
			return
		}

		transaction := &models.Transaction{
			WalletID:    req.WalletID,
			CategoryID:  req.CategoryID,
			Amount:      req.Amount,
			Type:        req.Type,
			Merchant:    req.Merchant,
			Description: req.Description,
			Date:        date,
		}
		if err := database.PostTransaction(pool, auth.CurrentUserID(c), transaction); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Транзакция успешно проведена", "transaction": transaction})
	}
}

// TransactionsByCategoryHandler отдает транзакции категории, необязательные
// фильтры приходят в query-параметрах
func TransactionsByCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор категории"})
			return
		}

		filter := &models.TransactionFilter{}
		if v := c.Query("type"); v != "" {
			t := models.TransactionType(v)
			if !t.Valid() {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Неподдерживаемый тип транзакции"})
				return
			}
			filter.Type = &t
		}
		if v := c.Query("transaction_date_from"); v != "" {
			d, err := time.Parse(dateLayout, v)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Некорректная дата в фильтре"})
				return
			}
			filter.DateFrom = &d
		}
		if v := c.Query("transaction_date_to"); v != "" {
			d, err := time.Parse(dateLayout, v)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Некорректная дата в фильтре"})
				return
			}
			filter.DateTo = &d
		}
		if v := c.Query("amount_min"); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Некорректная сумма в фильтре"})
				return
			}
			filter.AmountMin = &d
		}
		if v := c.Query("amount_max"); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Некорректная сумма в фильтре"})
				return
			}
			filter.AmountMax = &d
		}

		transactions, err := database.GetTransactionsByCategory(pool, auth.CurrentUserID(c), id, filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": transactions})
	}
}
