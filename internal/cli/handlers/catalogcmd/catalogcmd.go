// Package catalogcmd реализует команды просмотра каталога сервисов.
package catalogcmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/subsmanager/subsmanager-cli/internal/cli/output"
	"github.com/subsmanager/subsmanager-cli/internal/lib/sl"
	"github.com/subsmanager/subsmanager-cli/internal/models"
)

// CatalogService описывает интерфейс бизнес-логики каталога.
type CatalogService interface {
	Search(ctx context.Context, query, category string) ([]models.Service, error)
	Categories(ctx context.Context) ([]string, error)
}

type Handler struct {
	log     *slog.Logger
	service CatalogService
	out     io.Writer
}

func New(log *slog.Logger, service CatalogService, out io.Writer) *Handler {
	return &Handler{log: log, service: service, out: out}
}

// Run выполняет подкоманду каталога.
func (h *Handler) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		return h.list(ctx, args[1:])
	case "categories":
		return h.categories(ctx)
	default:
		return fmt.Errorf("unknown catalog command: %s", args[0])
	}
}

func (h *Handler) list(ctx context.Context, args []string) error {
	const op = "handlers.catalog.list"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(h.out)
	query := fs.String("query", "", "search by service name")
	category := fs.String("category", "", "filter by category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	services, err := h.service.Search(ctx, *query, *category)
	if err != nil {
		log.Error("failed to load catalog", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	if len(services) == 0 {
		fmt.Fprintln(h.out, "no services found")
		return nil
	}

	rows := make([][]string, 0, len(services))
	for _, svc := range services {
		for _, plan := range svc.Plans {
			rows = append(rows, []string{
				plan.PlanID,
				svc.Name,
				svc.Category,
				plan.PlanType,
				plan.Price.StringFixed(2),
			})
		}
	}
	return output.Table(h.out, []string{"PLAN", "SERVICE", "CATEGORY", "TYPE", "PRICE"}, rows)
}

func (h *Handler) categories(ctx context.Context) error {
	const op = "handlers.catalog.categories"
	log := h.log.With(slog.String("op", op))

	categories, err := h.service.Categories(ctx)
	if err != nil {
		log.Error("failed to load categories", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}
	for _, c := range categories {
		fmt.Fprintln(h.out, c)
	}
	return nil
}
