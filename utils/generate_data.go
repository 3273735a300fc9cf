package utils

import (
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wallet-api/internal/database"
	"github.com/valeriaulyamaeva/wallet-api/models"
)

// Генерация тестовых данных для локальной разработки. Это единственное
// место, где владелец записи задается явно, минуя текущую сессию.

func GenerateTestUsers(pool *pgxpool.Pool, numUsers int) []int {
	ids := make([]int, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user := &models.User{
			Email:    gofakeit.Email(),
			Password: gofakeit.Password(true, true, true, false, false, 10),
			Name:     gofakeit.Name(),
		}
		if err := database.RegisterUser(pool, user); err != nil {
			log.Fatalf("ошибка при добавлении пользователя: %v", err)
		}
		ids = append(ids, user.ID)
	}
	return ids
}

func randomWalletType() models.WalletType {
	types := []models.WalletType{
		models.WalletSavings, models.WalletChecking, models.WalletCreditCard,
		models.WalletDebitCard, models.WalletInvestment, models.WalletCash,
	}
	return types[rand.Intn(len(types))]
}

func randomCurrency() models.Currency {
	currencies := []models.Currency{
		models.CurrencyUSD, models.CurrencyEUR, models.CurrencyGBP,
		models.CurrencyJPY, models.CurrencyCHF, models.CurrencyCAD, models.CurrencyAUD,
	}
	return currencies[rand.Intn(len(currencies))]
}

func GenerateTestWallets(pool *pgxpool.Pool, userIDs []int, numWallets int) []int {
	ids := make([]int, 0, numWallets)
	for i := 0; i < numWallets; i++ {
		lastFour := gofakeit.DigitN(4)
		wallet := &models.Wallet{
			UserID:         userIDs[rand.Intn(len(userIDs))],
			Name:           gofakeit.NounCollectiveThing() + " wallet",
			Type:           randomWalletType(),
			Balance:        decimal.NewFromFloat(gofakeit.Price(10, 10000)).Round(2),
			Currency:       randomCurrency(),
			Institution:    gofakeit.Company(),
			LastFourDigits: &lastFour,
			IsActive:       true,
		}
		if err := database.CreateWallet(pool, wallet); err != nil {
			log.Fatalf("ошибка при добавлении кошелька: %v", err)
		}
		ids = append(ids, wallet.ID)
	}
	return ids
}

func randomCategoryType() models.CategoryType {
	if rand.Intn(2) == 0 {
		return models.CategoryExpense
	}
	return models.CategoryIncome
}

func GenerateTestCategories(pool *pgxpool.Pool, userIDs []int, numCategories int) []int {
	ids := make([]int, 0, numCategories)
	for i := 0; i < numCategories; i++ {
		color := gofakeit.HexColor()
		category := &models.Category{
			UserID: userIDs[rand.Intn(len(userIDs))],
			Name:   gofakeit.Word() + " " + gofakeit.Word(),
			Type:   randomCategoryType(),
			Color:  &color,
		}
		if err := database.CreateCategory(pool, category); err != nil {
			// имена не уникальны глобально, дубликат просто пропускаем
			continue
		}
		ids = append(ids, category.ID)
	}
	return ids
}

func GenerateTestTransactions(pool *pgxpool.Pool, numTransactions int, userID, walletID, categoryID int) {
	types := []models.TransactionType{models.TransactionIncome, models.TransactionExpense}
	for i := 0; i < numTransactions; i++ {
		merchant := gofakeit.Company()
		description := gofakeit.Sentence(5)
		transaction := &models.Transaction{
			WalletID:    walletID,
			CategoryID:  categoryID,
			Amount:      decimal.NewFromFloat(gofakeit.Price(1, 1000)).Round(2),
			Type:        types[rand.Intn(len(types))],
			Merchant:    &merchant,
			Description: &description,
			Date:        time.Now().AddDate(0, 0, -rand.Intn(30)),
		}
		if err := database.PostTransaction(pool, userID, transaction); err != nil {
			log.Fatalf("ошибка при добавлении транзакции: %v", err)
		}
	}
}
