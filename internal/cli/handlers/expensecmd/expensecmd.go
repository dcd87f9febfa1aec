// Package expensecmd реализует команду трекинга расходов пользователя.
package expensecmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/subsmanager/subsmanager-cli/internal/cli/output"
	"github.com/subsmanager/subsmanager-cli/internal/lib/sl"
	"github.com/subsmanager/subsmanager-cli/internal/models"
	"github.com/subsmanager/subsmanager-cli/internal/services/expense"
)

// ExpenseService описывает интерфейс бизнес-логики трекинга расходов.
type ExpenseService interface {
	List(ctx context.Context, userID int, category, month string) ([]models.Expense, error)
}

// SessionInfo отдаёт текущую сессию пользователя.
type SessionInfo interface {
	Current() *models.Session
}

type Handler struct {
	log     *slog.Logger
	service ExpenseService
	session SessionInfo
	out     io.Writer
}

func New(log *slog.Logger, service ExpenseService, session SessionInfo, out io.Writer) *Handler {
	return &Handler{log: log, service: service, session: session, out: out}
}

// Run показывает расходы с итогами по категориям.
func (h *Handler) Run(ctx context.Context, args []string) error {
	const op = "handlers.expense.list"
	log := h.log.With(slog.String("op", op))

	sess := h.session.Current()
	if sess == nil {
		return fmt.Errorf("not logged in")
	}

	fs := flag.NewFlagSet("expenses", flag.ContinueOnError)
	fs.SetOutput(h.out)
	category := fs.String("category", "", "filter by category")
	month := fs.String("month", "", "filter by month, YYYY-MM")
	if err := fs.Parse(args); err != nil {
		return err
	}

	expenses, err := h.service.List(ctx, sess.UserID, *category, *month)
	if err != nil {
		log.Error("failed to load expenses", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	if len(expenses) == 0 {
		fmt.Fprintln(h.out, "no expenses found")
		return nil
	}

	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.ID),
			e.Category,
			e.Amount.StringFixed(2),
			e.Date,
		})
	}
	if err := output.Table(h.out, []string{"ID", "CATEGORY", "AMOUNT", "DATE"}, rows); err != nil {
		return err
	}

	fmt.Fprintf(h.out, "\ntotal: %s\n", expense.Total(expenses).StringFixed(2))
	for _, ct := range expense.TotalsByCategory(expenses) {
		fmt.Fprintf(h.out, "  %s: %s\n", ct.Category, ct.Total.StringFixed(2))
	}
	return nil
}
