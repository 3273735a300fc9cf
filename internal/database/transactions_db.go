package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-api/models"
)

const transactionColumns = `id, wallet_id, category_id, amount, type, merchant, description, transaction_date, created_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	transaction := &models.Transaction{}
	err := row.Scan(
		&transaction.ID,
		&transaction.WalletID,
		&transaction.CategoryID,
		&transaction.Amount,
		&transaction.Type,
		&transaction.Merchant,
		&transaction.Description,
		&transaction.Date,
		&transaction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// PostTransaction проводит транзакцию: проверяет владельца кошелька и
// категории, сохраняет запись и применяет эффект к балансу кошелька.
// Все шаги выполняются в одной транзакции БД: либо видны и запись, и
// изменение баланса, либо ничего.
//
// Строка кошелька блокируется FOR UPDATE, поэтому параллельные проводки по
// одному кошельку сериализуются; проводки по разным кошелькам идут параллельно.
func PostTransaction(pool *pgxpool.Pool, userID int, transaction *models.Transaction) error {
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции: %v", err)
	}
	defer tx.Rollback(ctx)

	// Сначала существование, потом владелец: чужой и несуществующий id
	// различимы для клиента
	var walletOwner int
	err = tx.QueryRow(ctx, `SELECT user_id FROM wallets WHERE id = $1 FOR UPDATE`, transaction.WalletID).Scan(&walletOwner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("кошелек с ID %d: %w", transaction.WalletID, ErrNotFound)
		}
		return fmt.Errorf("ошибка при получении кошелька: %v", err)
	}
	if walletOwner != userID {
		return fmt.Errorf("кошелек с ID %d: %w", transaction.WalletID, ErrForbidden)
	}

	var categoryOwner int
	err = tx.QueryRow(ctx, `SELECT user_id FROM categories WHERE id = $1`, transaction.CategoryID).Scan(&categoryOwner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("категория с ID %d: %w", transaction.CategoryID, ErrNotFound)
		}
		return fmt.Errorf("ошибка при получении категории: %v", err)
	}
	if categoryOwner != userID {
		return fmt.Errorf("категория с ID %d: %w", transaction.CategoryID, ErrForbidden)
	}

	query := `
		INSERT INTO transactions (wallet_id, category_id, amount, type, merchant, description, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err = tx.QueryRow(ctx, query,
		transaction.WalletID,
		transaction.CategoryID,
		transaction.Amount,
		transaction.Type,
		transaction.Merchant,
		transaction.Description,
		transaction.Date).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении транзакции: %v", err)
	}

	switch transaction.Type {
	case models.TransactionIncome:
		_, err = ApplyWalletDelta(tx, transaction.WalletID, transaction.Amount, true)
	case models.TransactionExpense:
		_, err = ApplyWalletDelta(tx, transaction.WalletID, transaction.Amount, false)
	case models.TransactionTransfer:
		// TODO: нужна вторая проводка на кошелек-получатель, поля для него
		// в модели пока нет
		_, err = ApplyWalletDelta(tx, transaction.WalletID, transaction.Amount, false)
	default:
		return fmt.Errorf("неизвестный тип транзакции: %s", transaction.Type)
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	return nil
}

// GetTransactionsByCategory возвращает транзакции категории с проверкой
// владельца и необязательными фильтрами
func GetTransactionsByCategory(pool *pgxpool.Pool, userID, categoryID int, filter *models.TransactionFilter) ([]models.Transaction, error) {
	if _, err := GetCategoryForUser(pool, userID, categoryID); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE category_id = $1`
	args := []interface{}{categoryID}

	if filter != nil {
		if filter.Type != nil {
			args = append(args, *filter.Type)
			query += fmt.Sprintf(" AND type = $%d", len(args))
		}
		if filter.DateFrom != nil {
			args = append(args, *filter.DateFrom)
			query += fmt.Sprintf(" AND transaction_date >= $%d", len(args))
		}
		if filter.DateTo != nil {
			args = append(args, *filter.DateTo)
			query += fmt.Sprintf(" AND transaction_date <= $%d", len(args))
		}
		if filter.AmountMin != nil {
			args = append(args, *filter.AmountMin)
			query += fmt.Sprintf(" AND amount >= $%d", len(args))
		}
		if filter.AmountMax != nil {
			args = append(args, *filter.AmountMax)
			query += fmt.Sprintf(" AND amount <= $%d", len(args))
		}
	}
	query += " ORDER BY transaction_date DESC, id DESC"

	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении транзакций: %v", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *transaction)
	}
	return transactions, rows.Err()
}
