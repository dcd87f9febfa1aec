package expense

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/subsmanager/subsmanager-cli/internal/models"
)

type APIMock struct{ mock.Mock }

func (m *APIMock) Expenses(ctx context.Context, userID int) ([]models.Expense, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Expense), args.Error(1)
}

func NewNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func expenseRows() []models.Expense {
	return []models.Expense{
		{ID: 1, Category: "Streaming", Amount: decimal.NewFromFloat(9.99), Date: "2025-06-01"},
		{ID: 2, Category: "Música", Amount: decimal.NewFromFloat(5.99), Date: "2025-06-15"},
		{ID: 3, Category: "Streaming", Amount: decimal.NewFromFloat(12.99), Date: "2025-05-20"},
		{ID: 4, Category: "Cartera", Amount: decimal.NewFromFloat(20), Date: "2025-06-20"},
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name     string
		category string
		month    string
		wantIDs  []int
	}{
		{name: "без фильтров", wantIDs: []int{1, 2, 3, 4}},
		{name: "по категории", category: "Streaming", wantIDs: []int{1, 3}},
		{name: "по месяцу", month: "2025-06", wantIDs: []int{1, 2, 4}},
		{name: "категория и месяц", category: "Streaming", month: "2025-06", wantIDs: []int{1}},
		{name: "пустой результат", category: "Juegos", wantIDs: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiMock := new(APIMock)
			apiMock.On("Expenses", mock.Anything, 5).Return(expenseRows(), nil).Once()

			expenses, err := New(NewNoopLogger(), apiMock).List(context.Background(), 5, tt.category, tt.month)

			require.NoError(t, err)
			ids := make([]int, 0, len(expenses))
			for _, e := range expenses {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestTotal(t *testing.T) {
	total := Total(expenseRows())

	assert.True(t, total.Equal(decimal.NewFromFloat(48.97)), "got %s", total)
}

func TestTotalsByCategory(t *testing.T) {
	totals := TotalsByCategory(expenseRows())

	require.Len(t, totals, 3)
	assert.Equal(t, "Streaming", totals[0].Category)
	assert.True(t, totals[0].Total.Equal(decimal.NewFromFloat(22.98)))
	assert.Equal(t, "Música", totals[1].Category)
	assert.Equal(t, "Cartera", totals[2].Category)
}

func TestTotal_Empty(t *testing.T) {
	assert.True(t, Total(nil).IsZero())
}
