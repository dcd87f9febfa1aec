// Package expense показывает трекинг расходов пользователя: списания
// кошелька и оплаты подписок, объединённые бэкендом. Агрегаты
// считаются локально по загруженным строкам.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/subsmanager/subsmanager-cli/internal/models"
)

// ExpenseAPI описывает вызовы бэкенда, нужные трекингу расходов.
type ExpenseAPI interface {
	Expenses(ctx context.Context, userID int) ([]models.Expense, error)
}

// CategoryTotal — сумма расходов по одной категории.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

type Service struct {
	log *slog.Logger
	api ExpenseAPI
}

func New(log *slog.Logger, expenseAPI ExpenseAPI) *Service {
	return &Service{log: log, api: expenseAPI}
}

// List возвращает расходы пользователя. Непустая категория и месяц
// (формат 2006-01) сужают выборку.
func (s *Service) List(ctx context.Context, userID int, category, month string) ([]models.Expense, error) {
	const op = "expense.List"

	expenses, err := s.api.Expenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filtered := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if category != "" && e.Category != category {
			continue
		}
		if month != "" && !strings.HasPrefix(e.Date, month) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

// Total возвращает сумму переданных расходов.
func Total(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// TotalsByCategory возвращает суммы расходов по категориям
// в порядке первого появления категории.
func TotalsByCategory(expenses []models.Expense) []CategoryTotal {
	index := make(map[string]int)
	totals := make([]CategoryTotal, 0)
	for _, e := range expenses {
		pos, ok := index[e.Category]
		if !ok {
			pos = len(totals)
			index[e.Category] = pos
			totals = append(totals, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		totals[pos].Total = totals[pos].Total.Add(e.Amount)
	}
	return totals
}
