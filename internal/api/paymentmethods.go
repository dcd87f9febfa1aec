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

// Бэкенд отдаёт методы оплаты в разнородном виде: строки-кортежи
// [PaymentMethodId, Type, CardNumber, CardHolder, ExpiryDate, WalletBalance]
// либо объекты с теми же полями. decodeMethodRow приводит оба варианта
// к models.PaymentMethod.

// ListPaymentMethods возвращает все методы оплаты пользователя, включая
// строку кошелька. Ответ с success=false означает пустой список.
func (c *Client) ListPaymentMethods(ctx context.Context, userID int) ([]models.PaymentMethod, error) {
	const op = "api.ListPaymentMethods"

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/payment-methods/%d", userID), nil)
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

	methods := make([]models.PaymentMethod, 0, len(payload.Data))
	for _, raw := range payload.Data {
		method, err := decodeMethodRow(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		methods = append(methods, method)
	}
	return methods, nil
}

// AddMethodRequest — запрос POST /payment-methods/{userId}.
// Для наличного метода поля карты остаются пустыми.
type AddMethodRequest struct {
	Kind    string          `json:"tipo"`
	Number  string          `json:"numero,omitempty"`
	Holder  string          `json:"titular,omitempty"`
	Expiry  string          `json:"vencimiento,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}

// AddPaymentMethod сохраняет новый метод оплаты.
func (c *Client) AddPaymentMethod(ctx context.Context, userID int, addReq AddMethodRequest) error {
	const op = "api.AddPaymentMethod"

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/payment-methods/%d", userID), addReq)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdatePaymentMethod изменяет собственный баланс метода оплаты.
func (c *Client) UpdatePaymentMethod(ctx context.Context, userID, methodID int, balance decimal.Decimal) error {
	const op = "api.UpdatePaymentMethod"

	body := struct {
		Balance decimal.Decimal `json:"balance"`
	}{Balance: balance}
	path := fmt.Sprintf("/payment-methods/%d/%d", userID, methodID)
	req, err := c.newRequest(ctx, http.MethodPut, path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeletePaymentMethod удаляет метод оплаты.
func (c *Client) DeletePaymentMethod(ctx context.Context, userID, methodID int) error {
	const op = "api.DeletePaymentMethod"

	path := fmt.Sprintf("/payment-methods/%d/%d", userID, methodID)
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func decodeMethodRow(raw json.RawMessage) (models.PaymentMethod, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return decodeMethodTuple(raw)
	}
	return decodeMethodObject(raw)
}

func decodeMethodTuple(raw json.RawMessage) (models.PaymentMethod, error) {
	var method models.PaymentMethod

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tuple []any
	if err := dec.Decode(&tuple); err != nil {
		return method, err
	}
	if len(tuple) < 6 {
		return method, fmt.Errorf("payment method tuple has %d fields, want 6", len(tuple))
	}

	id, err := asInt(tuple[0])
	if err != nil {
		return method, err
	}
	balance, err := asDecimal(tuple[5])
	if err != nil {
		return method, err
	}
	method = models.PaymentMethod{
		ID:           id,
		Kind:         asString(tuple[1]),
		MaskedNumber: asString(tuple[2]),
		HolderName:   asString(tuple[3]),
		Expiry:       asString(tuple[4]),
		Balance:      balance,
	}
	return method, nil
}

func decodeMethodObject(raw json.RawMessage) (models.PaymentMethod, error) {
	var row struct {
		ID           int             `json:"PaymentMethodId"`
		Kind         string          `json:"Type"`
		MaskedNumber string          `json:"CardNumber"`
		HolderName   string          `json:"CardHolder"`
		Expiry       string          `json:"ExpiryDate"`
		Balance      decimal.Decimal `json:"WalletBalance"`
	}
	if err := json.Unmarshal(raw, &row); err != nil {
		return models.PaymentMethod{}, err
	}
	return models.PaymentMethod{
		ID:           row.ID,
		Kind:         row.Kind,
		MaskedNumber: row.MaskedNumber,
		HolderName:   row.HolderName,
		Expiry:       row.Expiry,
		Balance:      row.Balance,
	}, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) (int, error) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("expected number, got %T", v)
	}
	id, err := num.Int64()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func asDecimal(v any) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	num, ok := v.(json.Number)
	if !ok {
		return decimal.Zero, fmt.Errorf("expected number, got %T", v)
	}
	return decimal.NewFromString(num.String())
}
