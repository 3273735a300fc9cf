package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wallet-api/models"
)

const walletColumns = `id, user_id, name, type, balance, currency, institution, last_four_digits, is_active, created_at`

func scanWallet(row pgx.Row) (*models.Wallet, error) {
	wallet := &models.Wallet{}
	err := row.Scan(
		&wallet.ID,
		&wallet.UserID,
		&wallet.Name,
		&wallet.Type,
		&wallet.Balance,
		&wallet.Currency,
		&wallet.Institution,
		&wallet.LastFourDigits,
		&wallet.IsActive,
		&wallet.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// CreateWallet добавляет кошелек; wallet.UserID заполняется сервером из
// текущего пользователя, значение от клиента игнорируется
func CreateWallet(pool *pgxpool.Pool, wallet *models.Wallet) error {
	query := `
		INSERT INTO wallets (user_id, name, type, balance, currency, institution, last_four_digits, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := pool.QueryRow(context.Background(), query,
		wallet.UserID,
		wallet.Name,
		wallet.Type,
		wallet.Balance,
		wallet.Currency,
		wallet.Institution,
		wallet.LastFourDigits,
		wallet.IsActive).Scan(&wallet.ID, &wallet.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении кошелька: %v", err)
	}
	return nil
}

func GetWalletByID(pool *pgxpool.Pool, walletID int) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`

	wallet, err := scanWallet(pool.QueryRow(context.Background(), query, walletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении кошелька: %v", err)
	}
	return wallet, nil
}

// GetWalletForUser возвращает кошелек с проверкой владельца.
// Несуществующий id дает ErrNotFound до проверки владельца
func GetWalletForUser(pool *pgxpool.Pool, userID, walletID int) (*models.Wallet, error) {
	wallet, err := GetWalletByID(pool, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.UserID != userID {
		return nil, ErrForbidden
	}
	return wallet, nil
}

func UpdateWallet(pool *pgxpool.Pool, userID, walletID int, upd *models.WalletUpdate) (*models.Wallet, error) {
	wallet, err := GetWalletForUser(pool, userID, walletID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		wallet.Name = *upd.Name
	}
	if upd.Type != nil {
		wallet.Type = *upd.Type
	}
	if upd.Currency != nil {
		wallet.Currency = *upd.Currency
	}
	if upd.Institution != nil {
		wallet.Institution = *upd.Institution
	}
	if upd.LastFourDigits != nil {
		wallet.LastFourDigits = upd.LastFourDigits
	}
	if upd.IsActive != nil {
		wallet.IsActive = *upd.IsActive
	}

	// Баланс пишется только если пришел явно, иначе перезапись устаревшим
	// прочитанным значением потеряла бы параллельные проводки
	if upd.Balance != nil {
		wallet.Balance = *upd.Balance
		query := `
			UPDATE wallets
			SET name = $1, type = $2, balance = $3, currency = $4, institution = $5, last_four_digits = $6, is_active = $7
			WHERE id = $8`
		_, err = pool.Exec(context.Background(), query,
			wallet.Name, wallet.Type, wallet.Balance, wallet.Currency,
			wallet.Institution, wallet.LastFourDigits, wallet.IsActive, wallet.ID)
	} else {
		query := `
			UPDATE wallets
			SET name = $1, type = $2, currency = $3, institution = $4, last_four_digits = $5, is_active = $6
			WHERE id = $7`
		_, err = pool.Exec(context.Background(), query,
			wallet.Name, wallet.Type, wallet.Currency,
			wallet.Institution, wallet.LastFourDigits, wallet.IsActive, wallet.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления кошелька: %v", err)
	}
	return wallet, nil
}

func DeleteWallet(pool *pgxpool.Pool, userID, walletID int) error {
	if _, err := GetWalletForUser(pool, userID, walletID); err != nil {
		return err
	}

	result, err := pool.Exec(context.Background(), `DELETE FROM wallets WHERE id = $1`, walletID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении кошелька: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func queryWallets(pool *pgxpool.Pool, query string, args ...interface{}) ([]models.Wallet, error) {
	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении кошельков: %v", err)
	}
	defer rows.Close()

	var wallets []models.Wallet
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, *wallet)
	}
	return wallets, rows.Err()
}

func GetWalletsByUserID(pool *pgxpool.Pool, userID int) ([]models.Wallet, error) {
	return queryWallets(pool,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 ORDER BY id`, userID)
}

func GetActiveWallets(pool *pgxpool.Pool, userID int) ([]models.Wallet, error) {
	return queryWallets(pool,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 AND is_active = true ORDER BY id`, userID)
}

func GetArchivedWallets(pool *pgxpool.Pool, userID int) ([]models.Wallet, error) {
	return queryWallets(pool,
		`SELECT `+walletColumns+` FROM wallets WHERE user_id = $1 AND is_active = false ORDER BY id`, userID)
}

// ApplyWalletDelta атомарно сдвигает баланс одним UPDATE по сохраненному
// значению, без чтения и пересчета в памяти
func ApplyWalletDelta(tx pgx.Tx, walletID int, amount decimal.Decimal, credit bool) (decimal.Decimal, error) {
	delta := amount
	if !credit {
		delta = amount.Neg()
	}

	var balance decimal.Decimal
	err := tx.QueryRow(context.Background(),
		`UPDATE wallets SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		delta, walletID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Decimal{}, ErrNotFound
		}
		return decimal.Decimal{}, fmt.Errorf("ошибка изменения баланса: %v", err)
	}
	return balance, nil
}
