package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletType string

const (
	WalletSavings    WalletType = "savings"
	WalletChecking   WalletType = "checking"
	WalletCreditCard WalletType = "credit_card"
	WalletDebitCard  WalletType = "debit_card"
	WalletInvestment WalletType = "investment"
	WalletCash       WalletType = "cash"
)

func (t WalletType) Valid() bool {
	switch t {
	case WalletSavings, WalletChecking, WalletCreditCard, WalletDebitCard, WalletInvestment, WalletCash:
		return true
	}
	return false
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCHF Currency = "CHF"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyJPY, CurrencyCHF, CurrencyCAD, CurrencyAUD:
		return true
	}
	return false
}

func (c Currency) Symbol() string {
	switch c {
	case CurrencyUSD:
		return "$"
	case CurrencyEUR:
		return "€"
	case CurrencyGBP:
		return "£"
	case CurrencyJPY:
		return "¥"
	case CurrencyCHF:
		return "CHF"
	case CurrencyCAD:
		return "C$"
	case CurrencyAUD:
		return "A$"
	}
	return ""
}

func (c Currency) DisplayName() string {
	switch c {
	case CurrencyUSD:
		return "US Dollar"
	case CurrencyEUR:
		return "Euro"
	case CurrencyGBP:
		return "British Pound"
	case CurrencyJPY:
		return "Japanese Yen"
	case CurrencyCHF:
		return "Swiss Franc"
	case CurrencyCAD:
		return "Canadian Dollar"
	case CurrencyAUD:
		return "Australian Dollar"
	}
	return ""
}

// Максимальный баланс кошелька при создании и обновлении
var MaxWalletBalance = decimal.RequireFromString("999999999999.99")

type Wallet struct {
	ID             int             `json:"id" db:"id"`
	UserID         int             `json:"user_id" db:"user_id"`
	Name           string          `json:"name" db:"name"`
	Type           WalletType      `json:"type" db:"type"`
	Balance        decimal.Decimal `json:"balance" db:"balance"`
	Currency       Currency        `json:"currency" db:"currency"`
	Institution    string          `json:"institution" db:"institution"`
	LastFourDigits *string         `json:"last_four_digits,omitempty" db:"last_four_digits"`
	IsActive       bool            `json:"is_active" db:"is_active"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

// WalletUpdate описывает частичное обновление кошелька, nil-поля не меняются
type WalletUpdate struct {
	Name           *string          `json:"name"`
	Type           *WalletType      `json:"type"`
	Balance        *decimal.Decimal `json:"balance"`
	Currency       *Currency        `json:"currency"`
	Institution    *string          `json:"institution"`
	LastFourDigits *string          `json:"last_four_digits"`
	IsActive       *bool            `json:"is_active"`
}
