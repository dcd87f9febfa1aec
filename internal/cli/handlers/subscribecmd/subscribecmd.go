// Package subscribecmd реализует команду оформления подписки: поиск плана
// в каталоге, выбор метода оплаты и проведение платежа через машину
// состояний оформления.
package subscribecmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/subsmanager/subsmanager-cli/internal/cli/output"
	"github.com/subsmanager/subsmanager-cli/internal/lib/sl"
	"github.com/subsmanager/subsmanager-cli/internal/models"
	"github.com/subsmanager/subsmanager-cli/internal/services/catalog"
	"github.com/subsmanager/subsmanager-cli/internal/services/wallet"
)

// CatalogService описывает интерфейс каталога для поиска плана.
type CatalogService interface {
	List(ctx context.Context) ([]models.Service, error)
}

// MethodsService описывает интерфейс методов оплаты пользователя.
type MethodsService interface {
	Overview(ctx context.Context, userID int) (*wallet.Overview, error)
}

// CheckoutFlow описывает машину состояний оформления подписки.
type CheckoutFlow interface {
	Begin(service models.Service) error
	SelectPlan(plan models.Plan) error
	SelectMethod(method models.PaymentMethod) error
	Submit(ctx context.Context, userID int) error
}

// SessionInfo отдаёт текущую сессию пользователя.
type SessionInfo interface {
	Current() *models.Session
}

type Handler struct {
	log      *slog.Logger
	catalog  CatalogService
	methods  MethodsService
	checkout CheckoutFlow
	session  SessionInfo
	out      io.Writer
}

func New(log *slog.Logger, catalogService CatalogService, methods MethodsService, flow CheckoutFlow, session SessionInfo, out io.Writer) *Handler {
	return &Handler{
		log:      log,
		catalog:  catalogService,
		methods:  methods,
		checkout: flow,
		session:  session,
		out:      out,
	}
}

// Run оформляет подписку на план, оплачивая её выбранным методом.
func (h *Handler) Run(ctx context.Context, args []string) error {
	const op = "handlers.subscribe"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("subscribe", flag.ContinueOnError)
	fs.SetOutput(h.out)
	planID := fs.String("plan", "", "plan id from the catalog, e.g. 1-monthly")
	methodKind := fs.String("method", "", "payment method: wallet, or empty when -method-id is set")
	methodID := fs.Int("method-id", 0, "id of a saved card or cash method")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *planID == "" {
		return fmt.Errorf("flag -plan is required")
	}

	sess := h.session.Current()
	if sess == nil {
		return fmt.Errorf("not logged in")
	}

	services, err := h.catalog.List(ctx)
	if err != nil {
		log.Error("failed to load catalog", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}
	plan, found := catalog.FindPlan(services, *planID)
	if !found {
		return fmt.Errorf("plan %s not found in catalog", *planID)
	}
	service, found := findService(services, plan.ServiceID)
	if !found {
		return fmt.Errorf("service for plan %s not found", *planID)
	}

	method, err := h.resolveMethod(ctx, sess.UserID, *methodKind, *methodID)
	if err != nil {
		return err
	}

	if err := h.checkout.Begin(service); err != nil {
		return err
	}
	if err := h.checkout.SelectPlan(*plan); err != nil {
		return err
	}
	if err := h.checkout.SelectMethod(method); err != nil {
		return err
	}
	if err := h.checkout.Submit(ctx, sess.UserID); err != nil {
		log.Error("checkout failed", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	fmt.Fprintf(h.out, "subscribed to %s (%s) for %s\n",
		service.Name, plan.PlanType, plan.Price.StringFixed(2))
	return nil
}

// resolveMethod выбирает метод оплаты: кошелёк с его текущим балансом
// либо сохранённый метод по идентификатору.
func (h *Handler) resolveMethod(ctx context.Context, userID int, kind string, methodID int) (models.PaymentMethod, error) {
	overview, err := h.methods.Overview(ctx, userID)
	if err != nil {
		return models.PaymentMethod{}, fmt.Errorf("%s", output.UserMessage(err))
	}

	if kind == models.MethodWallet {
		return models.PaymentMethod{
			Kind:    models.MethodWallet,
			Balance: overview.WalletBalance,
		}, nil
	}
	if methodID == 0 {
		return models.PaymentMethod{}, fmt.Errorf("choose -method wallet or pass -method-id")
	}
	for _, m := range overview.Methods {
		if m.ID == methodID {
			return m, nil
		}
	}
	return models.PaymentMethod{}, fmt.Errorf("payment method %d not found", methodID)
}

func findService(services []models.Service, serviceID int) (models.Service, bool) {
	for _, svc := range services {
		if svc.ServiceID == serviceID {
			return svc, true
		}
	}
	return models.Service{}, false
}
