package database_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wallet-api/internal/database"
	"github.com/valeriaulyamaeva/wallet-api/models"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool, err := database.ConnectDB()
	if err != nil {
		t.Fatalf("ошибка подключения к бд: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) *models.User {
	t.Helper()
	user := &models.User{
		Email:    fmt.Sprintf("test-%d@example.com", time.Now().UnixNano()),
		Password: "secret-password",
		Name:     "Test User",
	}
	if err := database.RegisterUser(pool, user); err != nil {
		t.Fatalf("ошибка создания пользователя: %v", err)
	}
	return user
}

func createTestWallet(t *testing.T, pool *pgxpool.Pool, userID int, balance string) *models.Wallet {
	t.Helper()
	lastFour := "1234"
	wallet := &models.Wallet{
		UserID:         userID,
		Name:           fmt.Sprintf("Wallet %d", time.Now().UnixNano()),
		Type:           models.WalletChecking,
		Balance:        decimal.RequireFromString(balance),
		Currency:       models.CurrencyEUR,
		Institution:    "Test Bank",
		LastFourDigits: &lastFour,
		IsActive:       true,
	}
	if err := database.CreateWallet(pool, wallet); err != nil {
		t.Fatalf("ошибка создания кошелька: %v", err)
	}
	return wallet
}

func createTestCategory(t *testing.T, pool *pgxpool.Pool, userID int, parentID *int) *models.Category {
	t.Helper()
	category := &models.Category{
		UserID:   userID,
		Name:     fmt.Sprintf("Category %d", time.Now().UnixNano()),
		Type:     models.CategoryExpense,
		ParentID: parentID,
	}
	if err := database.CreateCategory(pool, category); err != nil {
		t.Fatalf("ошибка создания категории: %v", err)
	}
	return category
}
