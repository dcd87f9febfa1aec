// Package admincmd реализует команды панели администратора: пользователи,
// сервисы каталога, подписки, метрики и отчёты. Все команды требуют
// роль admin в текущей сессии.
package admincmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/subsmanager/subsmanager-cli/internal/cli/output"
	"github.com/subsmanager/subsmanager-cli/internal/lib/sl"
	"github.com/subsmanager/subsmanager-cli/internal/models"
	"github.com/subsmanager/subsmanager-cli/internal/services/admin"
)

// AdminService описывает интерфейс бизнес-логики панели администратора.
type AdminService interface {
	Users(ctx context.Context) ([]models.AdminUser, error)
	UpdateUser(ctx context.Context, userID int, form models.DummyUserEdit, users []models.AdminUser) ([]models.AdminUser, error)
	DeleteUser(ctx context.Context, userID int, users []models.AdminUser) ([]models.AdminUser, error)

	Services(ctx context.Context) ([]models.CatalogRow, error)
	CreateService(ctx context.Context, form models.DummyServiceForm, rows []models.CatalogRow) ([]models.CatalogRow, error)
	UpdateService(ctx context.Context, serviceID int, form models.DummyServiceForm, rows []models.CatalogRow) ([]models.CatalogRow, error)
	DeleteService(ctx context.Context, serviceID int, rows []models.CatalogRow) ([]models.CatalogRow, error)

	Subscriptions(ctx context.Context, filter admin.SubscriptionFilter) ([]models.AdminSubscription, error)

	Metrics(ctx context.Context) (*models.Metrics, error)
	ReportByUser(ctx context.Context) ([]models.ReportByUser, error)
	ReportByCategory(ctx context.Context) ([]models.ReportByCategory, error)
	ReportIncome(ctx context.Context) ([]models.ReportIncome, error)
	ReportSummary(ctx context.Context) (*models.ReportSummary, error)
}

// SessionGuard проверяет роль текущей сессии.
type SessionGuard interface {
	RequireRole(role string) error
}

type Handler struct {
	log      *slog.Logger
	service  AdminService
	session  SessionGuard
	validate *validator.Validate
	out      io.Writer
}

func New(log *slog.Logger, service AdminService, session SessionGuard, out io.Writer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		session:  session,
		validate: validator.New(),
		out:      out,
	}
}

// Run выполняет подкоманду панели администратора.
func (h *Handler) Run(ctx context.Context, args []string) error {
	if err := h.session.RequireRole(models.RoleAdmin); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: admin <users|services|subs|metrics|report>")
	}
	switch args[0] {
	case "users":
		return h.users(ctx, args[1:])
	case "services":
		return h.services(ctx, args[1:])
	case "subs":
		return h.subscriptions(ctx, args[1:])
	case "metrics":
		return h.metrics(ctx)
	case "report":
		return h.report(ctx, args[1:])
	default:
		return fmt.Errorf("unknown admin command: %s", args[0])
	}
}

func (h *Handler) users(ctx context.Context, args []string) error {
	const op = "handlers.admin.users"
	log := h.log.With(slog.String("op", op))

	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		users, err := h.service.Users(ctx)
		if err != nil {
			log.Error("failed to load users", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}
		return printUsers(h.out, users)

	case "edit":
		fs := flag.NewFlagSet("edit", flag.ContinueOnError)
		fs.SetOutput(h.out)
		userID := fs.Int("id", 0, "user id")
		name := fs.String("name", "", "display name")
		email := fs.String("email", "", "account email")
		role := fs.String("role", "", "role: admin or user")
		status := fs.String("status", "", "account status: active, deactivated, deleted")
		username := fs.String("username", "", "unique username")
		password := fs.String("password", "", "new password, empty keeps the current one")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *userID == 0 {
			return fmt.Errorf("flag -id is required")
		}

		form := models.DummyUserEdit{
			Name:          *name,
			Email:         *email,
			Role:          *role,
			AccountStatus: *status,
			Username:      *username,
			NewPassword:   *password,
		}
		if err := h.validate.Struct(form); err != nil {
			log.Error("validation failed", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}

		users, err := h.service.Users(ctx)
		if err != nil {
			log.Error("failed to load users", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}
		updated, err := h.service.UpdateUser(ctx, *userID, form, users)
		if err != nil {
			log.Error("failed to update user", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}
		fmt.Fprintln(h.out, "user updated")
		return printUsers(h.out, updated)

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ContinueOnError)
		fs.SetOutput(h.out)
		userID := fs.Int("id", 0, "user id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *userID == 0 {
			return fmt.Errorf("flag -id is required")
		}

		users, err := h.service.Users(ctx)
		if err != nil {
			log.Error("failed to load users", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}
		updated, err := h.service.DeleteUser(ctx, *userID, users)
		if err != nil {
			log.Error("failed to delete user", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}
		fmt.Fprintln(h.out, "user deleted")
		return printUsers(h.out, updated)

	default:
		return fmt.Errorf("unknown users command: %s", args[0])
	}
}

func (h *Handler) services(ctx context.Context, args []string) error {
	const op = "handlers.admin.services"
	log := h.log.With(slog.String("op", op))

	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		rows, err := h.service.Services(ctx)
		if err != nil {
			log.Error("failed to load services", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}
		return printCatalog(h.out, rows)

	case "create", "update":
		fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
		fs.SetOutput(h.out)
		serviceID := fs.Int("id", 0, "service id, required for update")
		name := fs.String("name", "", "service name")
		category := fs.String("category", "", "service category")
		description := fs.String("description", "", "service description")
		price := fs.Float64("price", 0, "plan price")
		planType := fs.String("plan", "", "plan type: monthly or annual")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		form := models.DummyServiceForm{
			Name:        *name,
			Category:    *category,
			Description: *description,
			Price:       *price,
			PlanType:    *planType,
		}
		if err := h.validate.Struct(form); err != nil {
			log.Error("validation failed", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}

		rows, err := h.service.Services(ctx)
		if err != nil {
			log.Error("failed to load services", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}

		var updated []models.CatalogRow
		if args[0] == "create" {
			updated, err = h.service.CreateService(ctx, form, rows)
		} else {
			if *serviceID == 0 {
				return fmt.Errorf("flag -id is required")
			}
			updated, err = h.service.UpdateService(ctx, *serviceID, form, rows)
		}
		if err != nil {
			log.Error("failed to save service", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}
		fmt.Fprintln(h.out, "service saved")
		return printCatalog(h.out, updated)

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ContinueOnError)
		fs.SetOutput(h.out)
		serviceID := fs.Int("id", 0, "service id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *serviceID == 0 {
			return fmt.Errorf("flag -id is required")
		}

		rows, err := h.service.Services(ctx)
		if err != nil {
			log.Error("failed to load services", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}
		updated, err := h.service.DeleteService(ctx, *serviceID, rows)
		if err != nil {
			log.Error("failed to delete service", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}
		fmt.Fprintln(h.out, "service deleted")
		return printCatalog(h.out, updated)

	default:
		return fmt.Errorf("unknown services command: %s", args[0])
	}
}

func (h *Handler) subscriptions(ctx context.Context, args []string) error {
	const op = "handlers.admin.subs"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("subs", flag.ContinueOnError)
	fs.SetOutput(h.out)
	status := fs.String("status", "", "filter by status")
	category := fs.String("category", "", "filter by category")
	dueBefore := fs.String("due-before", "", "only subscriptions due on or before, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	subs, err := h.service.Subscriptions(ctx, admin.SubscriptionFilter{
		Status:    *status,
		Category:  *category,
		DueBefore: *dueBefore,
	})
	if err != nil {
		log.Error("failed to load subscriptions", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	if len(subs) == 0 {
		fmt.Fprintln(h.out, "no subscriptions found")
		return nil
	}
	rows := make([][]string, 0, len(subs))
	for _, sub := range subs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", sub.SubscriptionID),
			sub.User,
			sub.Email,
			sub.ServiceName,
			sub.Category,
			sub.Status,
			sub.DueDate,
		})
	}
	return output.Table(h.out,
		[]string{"ID", "USER", "EMAIL", "SERVICE", "CATEGORY", "STATUS", "DUE"}, rows)
}

func (h *Handler) metrics(ctx context.Context) error {
	const op = "handlers.admin.metrics"
	log := h.log.With(slog.String("op", op))

	metrics, err := h.service.Metrics(ctx)
	if err != nil {
		log.Error("failed to load metrics", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	fmt.Fprintf(h.out, "total users: %d\n", metrics.TotalUsers)
	fmt.Fprintf(h.out, "subscriptions: %d active, %d inactive\n",
		metrics.StatusCounts.Active, metrics.StatusCounts.Inactive)

	fmt.Fprintln(h.out, "top services:")
	for _, svc := range metrics.TopServices {
		fmt.Fprintf(h.out, "  %s: %d\n", svc.Name, svc.Subscriptions)
	}
	fmt.Fprintln(h.out, "revenue by month:")
	for _, m := range metrics.MonthlyRevenue {
		fmt.Fprintf(h.out, "  %s: %s\n", m.Month, m.Revenue.StringFixed(2))
	}
	return nil
}

func (h *Handler) report(ctx context.Context, args []string) error {
	const op = "handlers.admin.report"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(h.out)
	kind := fs.String("type", "summary", "report type: user, category, income, summary")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch *kind {
	case "user":
		report, err := h.service.ReportByUser(ctx)
		if err != nil {
			log.Error("failed to load report", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}
		rows := make([][]string, 0, len(report))
		for _, r := range report {
			rows = append(rows, []string{r.User, r.ServiceName, r.Category, r.PlanType, r.Status})
		}
		return output.Table(h.out, []string{"USER", "SERVICE", "CATEGORY", "PLAN", "STATUS"}, rows)

	case "category":
		report, err := h.service.ReportByCategory(ctx)
		if err != nil {
			log.Error("failed to load report", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}
		rows := make([][]string, 0, len(report))
		for _, r := range report {
			rows = append(rows, []string{
				r.Category, r.ServiceName,
				fmt.Sprintf("%d", r.TotalSubscriptions),
				fmt.Sprintf("%d", r.Active),
				fmt.Sprintf("%d", r.Cancelled),
				fmt.Sprintf("%d", r.Expired),
				r.Revenue.StringFixed(2),
			})
		}
		return output.Table(h.out,
			[]string{"CATEGORY", "SERVICE", "TOTAL", "ACTIVE", "CANCELLED", "EXPIRED", "REVENUE"}, rows)

	case "income":
		report, err := h.service.ReportIncome(ctx)
		if err != nil {
			log.Error("failed to load report", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}
		rows := make([][]string, 0, len(report))
		for _, r := range report {
			rows = append(rows, []string{
				r.ServiceName, r.Category,
				fmt.Sprintf("%d", r.TotalSubscriptions),
				r.TotalRevenue.StringFixed(2),
				r.AverageRevenue.StringFixed(2),
			})
		}
		return output.Table(h.out,
			[]string{"SERVICE", "CATEGORY", "TOTAL", "REVENUE", "AVERAGE"}, rows)

	case "summary":
		summary, err := h.service.ReportSummary(ctx)
		if err != nil {
			log.Error("failed to load report", sl.Err(err))
			return fmt.Errorf("%s", output.UserMessage(err))
		}
		fmt.Fprintf(h.out, "users: %d\n", summary.TotalUsers)
		fmt.Fprintf(h.out, "services: %d\n", summary.TotalServices)
		fmt.Fprintf(h.out, "subscriptions: %d (%d active)\n",
			summary.TotalSubscriptions, summary.ActiveSubscriptions)
		fmt.Fprintf(h.out, "total revenue: %s\n", summary.TotalRevenue.StringFixed(2))
		fmt.Fprintln(h.out, "top categories:")
		for _, c := range summary.TopCategories {
			fmt.Fprintf(h.out, "  %s: %d\n", c.Category, c.Total)
		}
		return nil

	default:
		return fmt.Errorf("unknown report type: %s", *kind)
	}
}

func printUsers(w io.Writer, users []models.AdminUser) error {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			fmt.Sprintf("%d", u.UserID),
			u.Name,
			u.Email,
			u.Username,
			u.Role,
			u.AccountStatus,
		})
	}
	return output.Table(w, []string{"ID", "NAME", "EMAIL", "USERNAME", "ROLE", "STATUS"}, rows)
}

func printCatalog(w io.Writer, rows []models.CatalogRow) error {
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, []string{
			fmt.Sprintf("%d", row.ServiceID),
			row.Name,
			row.Category,
			row.PlanType,
			row.Price.StringFixed(2),
		})
	}
	return output.Table(w, []string{"ID", "NAME", "CATEGORY", "PLAN", "PRICE"}, table)
}
