package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subsmanager/subsmanager-cli/internal/models"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestListPaymentMethodsTuples(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment-methods/5", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [
				[1, "card", "**** **** **** 1234", "Ana Pérez", "12/28", 100.50],
				[2, "wallet", null, null, null, 40],
				[3, "cash", null, null, null, 25.75]
			]
		}`))
	}))

	methods, err := client.ListPaymentMethods(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, methods, 3)

	assert.Equal(t, 1, methods[0].ID)
	assert.Equal(t, models.MethodCard, methods[0].Kind)
	assert.Equal(t, "**** **** **** 1234", methods[0].MaskedNumber)
	assert.Equal(t, "Ana Pérez", methods[0].HolderName)
	assert.Equal(t, "12/28", methods[0].Expiry)
	assert.True(t, methods[0].Balance.Equal(mustDecimal(t, "100.50")))

	assert.Equal(t, models.MethodWallet, methods[1].Kind)
	assert.Empty(t, methods[1].MaskedNumber)
	assert.True(t, methods[1].Balance.Equal(mustDecimal(t, "40")))

	assert.Equal(t, models.MethodCash, methods[2].Kind)
	assert.True(t, methods[2].Balance.Equal(mustDecimal(t, "25.75")))
}

func TestListPaymentMethodsObjects(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [
				{"PaymentMethodId": 9, "Type": "card", "CardNumber": "**** **** **** 4321",
				 "CardHolder": "Luis Martínez", "ExpiryDate": "01/27", "WalletBalance": 12.25}
			]
		}`))
	}))

	methods, err := client.ListPaymentMethods(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, 9, methods[0].ID)
	assert.Equal(t, "Luis Martínez", methods[0].HolderName)
	assert.True(t, methods[0].Balance.Equal(mustDecimal(t, "12.25")))
}

func TestListPaymentMethodsEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "message": "No se encontraron métodos de pago registrados"}`))
	}))

	methods, err := client.ListPaymentMethods(context.Background(), 5)

	require.NoError(t, err)
	assert.Empty(t, methods)
}

func TestListPaymentMethodsBadTuple(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "data": [[1, "card"]]}`))
	}))

	_, err := client.ListPaymentMethods(context.Background(), 5)

	assert.Error(t, err)
}

func TestWalletTransactionsTuples(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallet/transactions/5", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [
				[11, "recharge", 25, "2025-06-01"],
				[12, "payment", 9.99, "2025-06-02"]
			]
		}`))
	}))

	txs, err := client.WalletTransactions(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, 11, txs[0].TransactionID)
	assert.Equal(t, models.TxRecharge, txs[0].Kind)
	assert.True(t, txs[0].Amount.Equal(mustDecimal(t, "25")))
	assert.Equal(t, "2025-06-01", txs[0].Date)
	assert.True(t, txs[1].Amount.Equal(mustDecimal(t, "9.99")))
}

func TestAddPaymentMethodBody(t *testing.T) {
	var gotBody string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(buf)
		gotBody = string(buf)
		_, _ = w.Write([]byte(`{"success": true, "message": "Método de pago agregado exitosamente"}`))
	}))

	err := client.AddPaymentMethod(context.Background(), 5, AddMethodRequest{
		Kind:    models.MethodCard,
		Number:  "4111111111111111",
		Holder:  "Ana Pérez",
		Expiry:  "12/28",
		Balance: decimal.Zero,
	})

	require.NoError(t, err)
	assert.Contains(t, gotBody, `"tipo":"card"`)
	assert.Contains(t, gotBody, `"numero":"4111111111111111"`)
	assert.Contains(t, gotBody, `"vencimiento":"12/28"`)
}
