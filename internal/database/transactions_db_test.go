package database_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wallet-api/internal/database"
	"github.com/valeriaulyamaeva/wallet-api/models"
)

func newTransaction(walletID, categoryID int, amount string, kind models.TransactionType) *models.Transaction {
	return &models.Transaction{
		WalletID:   walletID,
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString(amount),
		Type:       kind,
		Date:       time.Now().AddDate(0, 0, -1),
	}
}

func TestPostIncomeCreditsWallet(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	wallet := createTestWallet(t, pool, user.ID, "1000.50")
	category := createTestCategory(t, pool, user.ID, nil)

	transaction := newTransaction(wallet.ID, category.ID, "10.48", models.TransactionIncome)
	if err := database.PostTransaction(pool, user.ID, transaction); err != nil {
		t.Fatalf("ошибка проведения транзакции: %v", err)
	}
	if transaction.ID == 0 {
		t.Fatalf("после проведения не присвоен ID")
	}

	updated, err := database.GetWalletByID(pool, wallet.ID)
	if err != nil {
		t.Fatalf("ошибка получения кошелька: %v", err)
	}
	if updated.Balance.StringFixed(2) != "1010.98" {
		t.Errorf("баланс после дохода неверен: получили %s, хотели 1010.98", updated.Balance.StringFixed(2))
	}
}

func TestPostExpenseDebitsWalletExactly(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	wallet := createTestWallet(t, pool, user.ID, "1000.50")
	category := createTestCategory(t, pool, user.ID, nil)

	transaction := newTransaction(wallet.ID, category.ID, "10.48", models.TransactionExpense)
	if err := database.PostTransaction(pool, user.ID, transaction); err != nil {
		t.Fatalf("ошибка проведения транзакции: %v", err)
	}

	updated, err := database.GetWalletByID(pool, wallet.ID)
	if err != nil {
		t.Fatalf("ошибка получения кошелька: %v", err)
	}
	if updated.Balance.StringFixed(2) != "990.02" {
		t.Errorf("баланс после расхода неверен: получили %s, хотели 990.02", updated.Balance.StringFixed(2))
	}
}

func TestPostTransferDebitsSourceWallet(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	wallet := createTestWallet(t, pool, user.ID, "200.00")
	category := createTestCategory(t, pool, user.ID, nil)

	transaction := newTransaction(wallet.ID, category.ID, "50.00", models.TransactionTransfer)
	if err := database.PostTransaction(pool, user.ID, transaction); err != nil {
		t.Fatalf("ошибка проведения транзакции: %v", err)
	}

	updated, err := database.GetWalletByID(pool, wallet.ID)
	if err != nil {
		t.Fatalf("ошибка получения кошелька: %v", err)
	}
	if updated.Balance.StringFixed(2) != "150.00" {
		t.Errorf("перевод должен списывать с кошелька-источника: получили %s", updated.Balance.StringFixed(2))
	}
}

func TestPostTransactionForeignWalletRejected(t *testing.T) {
	pool := testPool(t)
	owner := createTestUser(t, pool)
	stranger := createTestUser(t, pool)
	wallet := createTestWallet(t, pool, owner.ID, "300.00")
	category := createTestCategory(t, pool, stranger.ID, nil)

	transaction := newTransaction(wallet.ID, category.ID, "25.00", models.TransactionExpense)
	err := database.PostTransaction(pool, stranger.ID, transaction)
	if !errors.Is(err, database.ErrForbidden) {
		t.Fatalf("ожидали ErrForbidden, получили %v", err)
	}

	// отказ не должен оставить ни записи, ни изменения баланса
	if transaction.ID != 0 {
		t.Errorf("транзакция сохранилась несмотря на отказ")
	}
	updated, err := database.GetWalletByID(pool, wallet.ID)
	if err != nil {
		t.Fatalf("ошибка получения кошелька: %v", err)
	}
	if updated.Balance.StringFixed(2) != "300.00" {
		t.Errorf("баланс изменился несмотря на отказ: %s", updated.Balance.StringFixed(2))
	}
}

func TestPostTransactionForeignCategoryRejected(t *testing.T) {
	pool := testPool(t)
	owner := createTestUser(t, pool)
	stranger := createTestUser(t, pool)
	wallet := createTestWallet(t, pool, owner.ID, "300.00")
	category := createTestCategory(t, pool, stranger.ID, nil)

	transaction := newTransaction(wallet.ID, category.ID, "25.00", models.TransactionExpense)
	err := database.PostTransaction(pool, owner.ID, transaction)
	if !errors.Is(err, database.ErrForbidden) {
		t.Fatalf("ожидали ErrForbidden для чужой категории, получили %v", err)
	}

	updated, err := database.GetWalletByID(pool, wallet.ID)
	if err != nil {
		t.Fatalf("ошибка получения кошелька: %v", err)
	}
	if updated.Balance.StringFixed(2) != "300.00" {
		t.Errorf("баланс изменился несмотря на отказ: %s", updated.Balance.StringFixed(2))
	}
}

func TestPostTransactionMissingWalletIsNotFound(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	category := createTestCategory(t, pool, user.ID, nil)

	// несуществующий кошелек дает "не найдено", а не "нет доступа"
	transaction := newTransaction(999999999, category.ID, "25.00", models.TransactionExpense)
	err := database.PostTransaction(pool, user.ID, transaction)
	if !errors.Is(err, database.ErrNotFound) {
		t.Errorf("ожидали ErrNotFound, получили %v", err)
	}
}

func TestGetTransactionsByCategoryWithFilters(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	wallet := createTestWallet(t, pool, user.ID, "1000.00")
	category := createTestCategory(t, pool, user.ID, nil)

	expense := newTransaction(wallet.ID, category.ID, "40.00", models.TransactionExpense)
	if err := database.PostTransaction(pool, user.ID, expense); err != nil {
		t.Fatalf("ошибка проведения транзакции: %v", err)
	}
	income := newTransaction(wallet.ID, category.ID, "75.00", models.TransactionIncome)
	if err := database.PostTransaction(pool, user.ID, income); err != nil {
		t.Fatalf("ошибка проведения транзакции: %v", err)
	}

	all, err := database.GetTransactionsByCategory(pool, user.ID, category.ID, nil)
	if err != nil {
		t.Fatalf("ошибка получения транзакций: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ожидали 2 транзакции, получили %d", len(all))
	}

	kind := models.TransactionIncome
	onlyIncome, err := database.GetTransactionsByCategory(pool, user.ID, category.ID, &models.TransactionFilter{Type: &kind})
	if err != nil {
		t.Fatalf("ошибка получения транзакций с фильтром: %v", err)
	}
	if len(onlyIncome) != 1 || onlyIncome[0].ID != income.ID {
		t.Errorf("фильтр по типу вернул неверный список: %+v", onlyIncome)
	}

	min := decimal.RequireFromString("50.00")
	large, err := database.GetTransactionsByCategory(pool, user.ID, category.ID, &models.TransactionFilter{AmountMin: &min})
	if err != nil {
		t.Fatalf("ошибка получения транзакций с фильтром: %v", err)
	}
	if len(large) != 1 || large[0].ID != income.ID {
		t.Errorf("фильтр по сумме вернул неверный список: %+v", large)
	}

	// чужая категория недоступна и для чтения
	stranger := createTestUser(t, pool)
	if _, err := database.GetTransactionsByCategory(pool, stranger.ID, category.ID, nil); !errors.Is(err, database.ErrForbidden) {
		t.Errorf("ожидали ErrForbidden, получили %v", err)
	}
}
