package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/subsmanager/subsmanager-cli/internal/models"
)

// WalletTransactions возвращает журнал транзакций кошелька, новые первыми.
// Строки приходят кортежами [TransactionId, Type, Amount, TransactionDate]
// либо объектами; success=false означает пустую историю.
func (c *Client) WalletTransactions(ctx context.Context, userID int) ([]models.WalletTransaction, error) {
	const op = "api.WalletTransactions"

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/wallet/transactions/%d", userID), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var payload struct {
		Success bool              `json:"success"`
		Data    []json.RawMessage `json:"data"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !payload.Success {
		return nil, nil
	}

	txs := make([]models.WalletTransaction, 0, len(payload.Data))
	for _, raw := range payload.Data {
		tx, err := decodeTransactionRow(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WalletUpdate пополняет (recharge) или списывает (deduction) баланс
// кошелька и возвращает новый баланс по версии бэкенда.
func (c *Client) WalletUpdate(ctx context.Context, userID int, kind string, amount decimal.Decimal) (decimal.Decimal, error) {
	const op = "api.WalletUpdate"

	body := struct {
		Kind   string          `json:"tipo"`
		Amount decimal.Decimal `json:"monto"`
	}{Kind: kind, Amount: amount}
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/wallet/update/%d", userID), body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}

	var payload struct {
		Success    bool            `json:"success"`
		NewBalance decimal.Decimal `json:"new_balance"`
	}
	if err := c.do(req, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return payload.NewBalance, nil
}

// RechargeFromMethod пополняет кошелёк со счёта выбранного метода оплаты.
func (c *Client) RechargeFromMethod(ctx context.Context, userID, methodID int, amount decimal.Decimal) error {
	const op = "api.RechargeFromMethod"

	body := struct {
		MethodID int             `json:"payment_method_id"`
		Amount   decimal.Decimal `json:"amount"`
	}{MethodID: methodID, Amount: amount}
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/wallet/recharge-from-method/%d", userID), body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Expenses возвращает строки трекинга расходов: списания кошелька
// и оплаты подписок, объединённые бэкендом, новые первыми.
func (c *Client) Expenses(ctx context.Context, userID int) ([]models.Expense, error) {
	const op = "api.Expenses"

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/expenses/%d", userID), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var expenses []models.Expense
	if err := c.do(req, &expenses); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return expenses, nil
}

func decodeTransactionRow(raw json.RawMessage) (models.WalletTransaction, error) {
	var tx models.WalletTransaction

	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var tuple []any
		if err := dec.Decode(&tuple); err != nil {
			return tx, err
		}
		if len(tuple) < 4 {
			return tx, fmt.Errorf("wallet transaction tuple has %d fields, want 4", len(tuple))
		}
		id, err := asInt(tuple[0])
		if err != nil {
			return tx, err
		}
		amount, err := asDecimal(tuple[2])
		if err != nil {
			return tx, err
		}
		tx = models.WalletTransaction{
			TransactionID: id,
			Kind:          asString(tuple[1]),
			Amount:        amount,
			Date:          asString(tuple[3]),
		}
		return tx, nil
	}

	var row struct {
		TransactionID int             `json:"TransactionId"`
		Kind          string          `json:"Type"`
		Amount        decimal.Decimal `json:"Amount"`
		Date          string          `json:"TransactionDate"`
	}
	if err := json.Unmarshal(raw, &row); err != nil {
		return tx, err
	}
	tx = models.WalletTransaction{
		TransactionID: row.TransactionID,
		Kind:          row.Kind,
		Amount:        row.Amount,
		Date:          row.Date,
	}
	return tx, nil
}
