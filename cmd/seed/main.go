package main

import (
	"log"

	"github.com/valeriaulyamaeva/wallet-api/internal/database"
	"github.com/valeriaulyamaeva/wallet-api/utils"
)

// Наполняет базу тестовыми данными
func main() {
	pool, err := database.ConnectDB()
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer pool.Close()

	userIDs := utils.GenerateTestUsers(pool, 5)
	walletIDs := utils.GenerateTestWallets(pool, userIDs, 10)
	categoryIDs := utils.GenerateTestCategories(pool, userIDs, 15)

	if len(walletIDs) > 0 && len(categoryIDs) > 0 {
		wallet, err := database.GetWalletByID(pool, walletIDs[0])
		if err != nil {
			log.Fatalf("Ошибка получения кошелька: %v", err)
		}
		category, err := database.GetCategoryForUser(pool, wallet.UserID, categoryIDs[0])
		if err == nil {
			utils.GenerateTestTransactions(pool, 20, wallet.UserID, wallet.ID, category.ID)
		}
	}

	log.Println("Генерация тестовых данных завершена успешно.")
}
