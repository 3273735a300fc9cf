package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
	// Transfer пока только списывает сумму с кошелька-источника,
	// кошелек-получатель в модели отсутствует
	TransactionTransfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense || t == TransactionTransfer
}

// Верхняя граница суммы транзакции
var MaxTransactionAmount = decimal.RequireFromString("9999999999999.99")

type Transaction struct {
	ID          int             `json:"id" db:"id"`
	WalletID    int             `json:"wallet_id" db:"wallet_id"`
	CategoryID  int             `json:"category_id" db:"category_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Type        TransactionType `json:"type" db:"type"`
	Merchant    *string         `json:"merchant,omitempty" db:"merchant"`
	Description *string         `json:"description,omitempty" db:"description"`
	Date        time.Time       `json:"transaction_date" db:"transaction_date"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// TransactionFilter — фильтры списка транзакций, nil-поля не применяются
type TransactionFilter struct {
	Type      *TransactionType
	DateFrom  *time.Time
	DateTo    *time.Time
	AmountMin *decimal.Decimal
	AmountMax *decimal.Decimal
}
