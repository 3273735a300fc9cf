package database_test

import (
	"errors"
	"testing"

	"github.com/valeriaulyamaeva/wallet-api/internal/database"
	"github.com/valeriaulyamaeva/wallet-api/models"
)

func TestCreateAndGetWallet(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	wallet := createTestWallet(t, pool, user.ID, "1000.50")
	if wallet.ID == 0 {
		t.Fatalf("после создания не присвоен ID")
	}

	stored, err := database.GetWalletForUser(pool, user.ID, wallet.ID)
	if err != nil {
		t.Fatalf("ошибка получения кошелька: %v", err)
	}
	if !stored.Balance.Equal(wallet.Balance) {
		t.Errorf("баланс не совпадает: получили %s, хотели %s", stored.Balance, wallet.Balance)
	}
	if stored.Currency != models.CurrencyEUR || stored.Type != models.WalletChecking {
		t.Errorf("данные кошелька не совпадают: %+v", stored)
	}
}

func TestGetWalletNotFoundBeforeForbidden(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	// несуществующий id всегда дает "не найдено", а не "нет доступа"
	_, err := database.GetWalletForUser(pool, user.ID, 999999999)
	if !errors.Is(err, database.ErrNotFound) {
		t.Errorf("ожидали ErrNotFound, получили %v", err)
	}

	other := createTestUser(t, pool)
	wallet := createTestWallet(t, pool, other.ID, "100.00")

	_, err = database.GetWalletForUser(pool, user.ID, wallet.ID)
	if !errors.Is(err, database.ErrForbidden) {
		t.Errorf("ожидали ErrForbidden, получили %v", err)
	}
}

func TestUpdateWallet(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	wallet := createTestWallet(t, pool, user.ID, "500.00")

	newName := "Updated wallet name"
	inactive := false
	updated, err := database.UpdateWallet(pool, user.ID, wallet.ID, &models.WalletUpdate{
		Name:     &newName,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("ошибка обновления кошелька: %v", err)
	}
	if updated.Name != newName || updated.IsActive {
		t.Errorf("обновленные поля не применились: %+v", updated)
	}
	// баланс не передавали, он не должен измениться
	if !updated.Balance.Equal(wallet.Balance) {
		t.Errorf("баланс изменился без запроса: %s", updated.Balance)
	}
}

func TestUpdateWalletForbiddenForStranger(t *testing.T) {
	pool := testPool(t)
	owner := createTestUser(t, pool)
	stranger := createTestUser(t, pool)
	wallet := createTestWallet(t, pool, owner.ID, "500.00")

	newName := "Hacked name"
	_, err := database.UpdateWallet(pool, stranger.ID, wallet.ID, &models.WalletUpdate{Name: &newName})
	if !errors.Is(err, database.ErrForbidden) {
		t.Errorf("ожидали ErrForbidden, получили %v", err)
	}
}

func TestDeleteWallet(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	wallet := createTestWallet(t, pool, user.ID, "0.00")

	if err := database.DeleteWallet(pool, user.ID, wallet.ID); err != nil {
		t.Fatalf("ошибка удаления кошелька: %v", err)
	}

	_, err := database.GetWalletByID(pool, wallet.ID)
	if !errors.Is(err, database.ErrNotFound) {
		t.Errorf("кошелек все еще существует после удаления")
	}
}

func TestWalletListsSplitByActiveFlag(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	active := createTestWallet(t, pool, user.ID, "10.00")
	archived := createTestWallet(t, pool, user.ID, "20.00")
	inactive := false
	if _, err := database.UpdateWallet(pool, user.ID, archived.ID, &models.WalletUpdate{IsActive: &inactive}); err != nil {
		t.Fatalf("ошибка архивирования кошелька: %v", err)
	}

	activeList, err := database.GetActiveWallets(pool, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения активных кошельков: %v", err)
	}
	archivedList, err := database.GetArchivedWallets(pool, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения архивных кошельков: %v", err)
	}
	allList, err := database.GetWalletsByUserID(pool, user.ID)
	if err != nil {
		t.Fatalf("ошибка получения всех кошельков: %v", err)
	}

	if !containsWallet(activeList, active.ID) || containsWallet(activeList, archived.ID) {
		t.Errorf("список активных кошельков неверен: %+v", activeList)
	}
	if !containsWallet(archivedList, archived.ID) || containsWallet(archivedList, active.ID) {
		t.Errorf("список архивных кошельков неверен: %+v", archivedList)
	}
	if len(allList) != 2 {
		t.Errorf("ожидали 2 кошелька, получили %d", len(allList))
	}
}

func TestWalletListsNeverCrossOwners(t *testing.T) {
	pool := testPool(t)
	user1 := createTestUser(t, pool)
	user2 := createTestUser(t, pool)

	mine := createTestWallet(t, pool, user1.ID, "10.00")
	foreign := createTestWallet(t, pool, user2.ID, "10.00")

	list, err := database.GetWalletsByUserID(pool, user1.ID)
	if err != nil {
		t.Fatalf("ошибка получения кошельков: %v", err)
	}
	if !containsWallet(list, mine.ID) {
		t.Errorf("свой кошелек отсутствует в списке")
	}
	if containsWallet(list, foreign.ID) {
		t.Errorf("в списке оказался чужой кошелек")
	}
}

func containsWallet(wallets []models.Wallet, id int) bool {
	for _, w := range wallets {
		if w.ID == id {
			return true
		}
	}
	return false
}
