package models

import "github.com/shopspring/decimal"

// Виды транзакций кошелька. Записи журнала только добавляются,
// клиент никогда их не изменяет.
const (
	TxRecharge  = "recharge"
	TxPayment   = "payment"
	TxDeduction = "deduction"
)

// WalletTransaction представляет запись журнала кошелька.
type WalletTransaction struct {
	TransactionID int             // Идентификатор транзакции
	Kind          string          // recharge, payment или deduction
	Amount        decimal.Decimal // Сумма операции
	Date          string          // Дата в формате 2006-01-02
}

// Expense представляет строку трекинга расходов: списания кошелька
// и оплаты подписок, объединённые бэкендом.
type Expense struct {
	ID       int             `json:"id"`
	Category string          `json:"categoria"`
	Amount   decimal.Decimal `json:"monto"`
	Date     string          `json:"fecha"`
}
