// Package ledgercmd реализует команды истории подписок пользователя.
package ledgercmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/subsmanager/subsmanager-cli/internal/cli/output"
	"github.com/subsmanager/subsmanager-cli/internal/lib/sl"
	"github.com/subsmanager/subsmanager-cli/internal/models"
	"github.com/subsmanager/subsmanager-cli/internal/services/ledger"
)

// LedgerService описывает интерфейс бизнес-логики истории подписок.
type LedgerService interface {
	List(ctx context.Context, userID int, filter ledger.Filter) ([]models.Subscription, error)
	Cancel(ctx context.Context, userID, subscriptionID int, subs []models.Subscription) ([]models.Subscription, error)
}

// SessionInfo отдаёт текущую сессию пользователя.
type SessionInfo interface {
	Current() *models.Session
}

type Handler struct {
	log     *slog.Logger
	service LedgerService
	session SessionInfo
	in      io.Reader
	out     io.Writer
}

func New(log *slog.Logger, service LedgerService, session SessionInfo, in io.Reader, out io.Writer) *Handler {
	return &Handler{log: log, service: service, session: session, in: in, out: out}
}

// Run выполняет подкоманду истории подписок.
func (h *Handler) Run(ctx context.Context, args []string) error {
	sess := h.session.Current()
	if sess == nil {
		return fmt.Errorf("not logged in")
	}
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		return h.list(ctx, sess.UserID, args[1:])
	case "cancel":
		return h.cancel(ctx, sess.UserID, args[1:])
	default:
		return fmt.Errorf("unknown subscriptions command: %s", args[0])
	}
}

func (h *Handler) list(ctx context.Context, userID int, args []string) error {
	const op = "handlers.ledger.list"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(h.out)
	status := fs.String("status", "", "filter by status: active, cancelled, expired")
	category := fs.String("category", "", "filter by category")
	from := fs.String("from", "", "date range start, YYYY-MM-DD")
	to := fs.String("to", "", "date range end, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	subs, err := h.service.List(ctx, userID, ledger.Filter{
		Status:   *status,
		Category: *category,
		From:     *from,
		To:       *to,
	})
	if err != nil {
		log.Error("failed to load subscriptions", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	if len(subs) == 0 {
		fmt.Fprintln(h.out, "no subscriptions found")
		return nil
	}
	return output.Table(h.out,
		[]string{"ID", "SERVICE", "CATEGORY", "PLAN", "START", "END", "STATUS"},
		subscriptionRows(subs))
}

func (h *Handler) cancel(ctx context.Context, userID int, args []string) error {
	const op = "handlers.ledger.cancel"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("cancel", flag.ContinueOnError)
	fs.SetOutput(h.out)
	subscriptionID := fs.Int("id", 0, "subscription id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *subscriptionID == 0 {
		return fmt.Errorf("flag -id is required")
	}

	ok, err := output.Confirm(h.in, h.out, fmt.Sprintf("cancel subscription %d?", *subscriptionID))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(h.out, "aborted")
		return nil
	}

	subs, err := h.service.List(ctx, userID, ledger.Filter{})
	if err != nil {
		log.Error("failed to load subscriptions", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	updated, err := h.service.Cancel(ctx, userID, *subscriptionID, subs)
	if err != nil {
		log.Error("failed to cancel subscription", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	fmt.Fprintln(h.out, "subscription cancelled")
	return output.Table(h.out,
		[]string{"ID", "SERVICE", "CATEGORY", "PLAN", "START", "END", "STATUS"},
		subscriptionRows(updated))
}

func subscriptionRows(subs []models.Subscription) [][]string {
	rows := make([][]string, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", sub.SubscriptionID),
			sub.ServiceName,
			sub.Category,
			sub.PlanType,
			sub.StartDate,
			sub.EndDate,
			sub.Status,
		})
	}
	return rows
}
