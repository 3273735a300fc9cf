package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/wallet-api/models"
)

func validWalletRequest() createWalletRequest {
	return createWalletRequest{
		Name:        "Основной счет",
		Type:        models.WalletChecking,
		Balance:     decimal.RequireFromString("100.00"),
		Currency:    models.CurrencyEUR,
		Institution: "Test Bank",
	}
}

func TestCreateWalletRequestValidate(t *testing.T) {
	if msg := func() string { r := validWalletRequest(); return r.validate() }(); msg != "" {
		t.Fatalf("корректный запрос отклонен: %s", msg)
	}

	cases := []struct {
		name   string
		mutate func(r *createWalletRequest)
	}{
		{"короткое имя", func(r *createWalletRequest) { r.Name = "Счет" }},
		{"длинное имя", func(r *createWalletRequest) { r.Name = strings.Repeat("a", 41) }},
		{"неизвестный тип", func(r *createWalletRequest) { r.Type = "bitcoin" }},
		{"отрицательный баланс", func(r *createWalletRequest) { r.Balance = decimal.RequireFromString("-1") }},
		{"баланс сверх максимума", func(r *createWalletRequest) { r.Balance = models.MaxWalletBalance.Add(decimal.RequireFromString("0.01")) }},
		{"три знака после запятой", func(r *createWalletRequest) { r.Balance = decimal.RequireFromString("10.001") }},
		{"неизвестная валюта", func(r *createWalletRequest) { r.Currency = "RUB" }},
		{"короткая организация", func(r *createWalletRequest) { r.Institution = "ab" }},
		{"неполные цифры карты", func(r *createWalletRequest) { s := "123"; r.LastFourDigits = &s }},
	}
	for _, tc := range cases {
		r := validWalletRequest()
		tc.mutate(&r)
		if r.validate() == "" {
			t.Errorf("%s: запрос должен быть отклонен", tc.name)
		}
	}

	// граница включительно
	r := validWalletRequest()
	r.Balance = models.MaxWalletBalance
	if msg := r.validate(); msg != "" {
		t.Errorf("максимальный баланс должен приниматься: %s", msg)
	}
}

func validTransactionRequest() createTransactionRequest {
	return createTransactionRequest{
		WalletID:   1,
		CategoryID: 2,
		Amount:     decimal.RequireFromString("10.48"),
		Type:       models.TransactionExpense,
		Date:       time.Now().Format(dateLayout),
	}
}

func TestCreateTransactionRequestValidate(t *testing.T) {
	r := validTransactionRequest()
	date, msg := r.validate()
	if msg != "" {
		t.Fatalf("корректный запрос отклонен: %s", msg)
	}
	if date.Format(dateLayout) != r.Date {
		t.Errorf("дата разобрана неверно: %s", date)
	}

	cases := []struct {
		name   string
		mutate func(r *createTransactionRequest)
	}{
		{"нулевая сумма", func(r *createTransactionRequest) { r.Amount = decimal.Zero }},
		{"отрицательная сумма", func(r *createTransactionRequest) { r.Amount = decimal.RequireFromString("-5") }},
		{"сумма сверх максимума", func(r *createTransactionRequest) { r.Amount = models.MaxTransactionAmount.Add(decimal.RequireFromString("0.01")) }},
		{"три знака после запятой", func(r *createTransactionRequest) { r.Amount = decimal.RequireFromString("1.005") }},
		{"неизвестный тип", func(r *createTransactionRequest) { r.Type = "refund" }},
		{"длинный продавец", func(r *createTransactionRequest) { s := strings.Repeat("m", 256); r.Merchant = &s }},
		{"длинное описание", func(r *createTransactionRequest) { s := strings.Repeat("d", 656); r.Description = &s }},
		{"дата в будущем", func(r *createTransactionRequest) { r.Date = time.Now().AddDate(0, 0, 1).Format(dateLayout) }},
		{"неверный формат даты", func(r *createTransactionRequest) { r.Date = "30.08.2026" }},
		{"нет кошелька", func(r *createTransactionRequest) { r.WalletID = 0 }},
	}
	for _, tc := range cases {
		r := validTransactionRequest()
		tc.mutate(&r)
		if _, msg := r.validate(); msg == "" {
			t.Errorf("%s: запрос должен быть отклонен", tc.name)
		}
	}

	// сегодняшняя дата допустима, граница суммы включительно
	r = validTransactionRequest()
	r.Amount = models.MaxTransactionAmount
	if _, msg := r.validate(); msg != "" {
		t.Errorf("максимальная сумма должна приниматься: %s", msg)
	}
}
