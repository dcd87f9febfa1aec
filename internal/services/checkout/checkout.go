// Package checkout ведёт оформление подписки как машину состояний:
// выбор плана и метода оплаты, отправка платежа, результат. Баланс
// кошелька проверяется до обращения к бэкенду: недостаточный баланс
// останавливает оплату без сетевого вызова.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/subsmanager/subsmanager-cli/internal/api"
	"github.com/subsmanager/subsmanager-cli/internal/lib/planid"
	"github.com/subsmanager/subsmanager-cli/internal/lib/sl"
	"github.com/subsmanager/subsmanager-cli/internal/models"
)

// Состояния оформления.
const (
	StateIdle       = "idle"
	StateSelecting  = "selecting"
	StateSubmitting = "submitting"
	StateSucceeded  = "succeeded"
	StateFailed     = "failed"
)

// Ошибки оформления.
var (
	ErrInvalidState        = errors.New("operation not allowed in current state")
	ErrNoPlanSelected      = errors.New("no plan selected")
	ErrNoMethodSelected    = errors.New("no payment method selected")
	ErrPlanMismatch        = errors.New("plan does not belong to selected service")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)

// PayAPI описывает вызов бэкенда, которым завершается оформление.
type PayAPI interface {
	PayPlan(ctx context.Context, userID int, req api.PayPlanRequest) error
}

// Flow — состояние одного оформления подписки.
type Flow struct {
	log *slog.Logger
	api PayAPI
	now func() time.Time

	state   string
	service *models.Service
	plan    *models.Plan
	method  *models.PaymentMethod
	failure error
}

func New(log *slog.Logger, payAPI PayAPI) *Flow {
	return &Flow{
		log:   log,
		api:   payAPI,
		now:   time.Now,
		state: StateIdle,
	}
}

// Begin начинает оформление для выбранного сервиса. Допускается из
// покоя и из завершённых состояний; прежний выбор сбрасывается.
func (f *Flow) Begin(service models.Service) error {
	if f.state == StateSubmitting {
		return ErrInvalidState
	}
	f.service = &service
	f.plan = nil
	f.method = nil
	f.failure = nil
	f.state = StateSelecting
	return nil
}

// SelectPlan фиксирует план. План обязан принадлежать сервису оформления.
func (f *Flow) SelectPlan(plan models.Plan) error {
	if f.state != StateSelecting {
		return ErrInvalidState
	}
	if plan.ServiceID != f.service.ServiceID {
		return ErrPlanMismatch
	}
	f.plan = &plan
	return nil
}

// SelectMethod фиксирует метод оплаты.
func (f *Flow) SelectMethod(method models.PaymentMethod) error {
	if f.state != StateSelecting {
		return ErrInvalidState
	}
	f.method = &method
	return nil
}

// Submit отправляет платёж. Период подписки начинается сегодня и длится
// месяц либо год по типу плана. Оплата кошельком с балансом меньше цены
// плана отклоняется ErrInsufficientBalance без обращения к бэкенду;
// оформление остаётся на выборе, пользователь может выбрать другой метод.
func (f *Flow) Submit(ctx context.Context, userID int) error {
	const op = "checkout.Submit"

	if f.state != StateSelecting {
		return ErrInvalidState
	}
	if f.plan == nil {
		return ErrNoPlanSelected
	}
	if f.method == nil {
		return ErrNoMethodSelected
	}

	if f.method.Kind == models.MethodWallet && f.method.Balance.LessThan(f.plan.Price) {
		f.log.Info("checkout blocked",
			slog.String("plan", f.plan.PlanID),
			slog.String("wallet_balance", f.method.Balance.String()),
			slog.String("price", f.plan.Price.String()))
		return ErrInsufficientBalance
	}

	f.state = StateSubmitting
	start := f.now()
	end := planid.PeriodEnd(start, f.plan.PlanType)

	err := f.api.PayPlan(ctx, userID, api.PayPlanRequest{
		ServiceID:     f.plan.ServiceID,
		PlanType:      f.plan.PlanType,
		StartDate:     start.Format("2006-01-02"),
		EndDate:       end.Format("2006-01-02"),
		Amount:        f.plan.Price,
		PaymentMethod: f.method.Kind,
	})
	if err != nil {
		f.failure = err
		f.state = StateFailed
		f.log.Error("checkout failed", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	f.state = StateSucceeded
	f.log.Info("checkout succeeded",
		slog.String("plan", f.plan.PlanID),
		slog.String("method", f.method.Kind))
	return nil
}

// Cancel прерывает оформление и возвращает машину в покой.
func (f *Flow) Cancel() {
	if f.state == StateSubmitting {
		return
	}
	f.service = nil
	f.plan = nil
	f.method = nil
	f.failure = nil
	f.state = StateIdle
}

// Retry возвращает неудавшееся оформление к выбору, сохраняя
// выбранные план и метод.
func (f *Flow) Retry() error {
	if f.state != StateFailed {
		return ErrInvalidState
	}
	f.failure = nil
	f.state = StateSelecting
	return nil
}

// State возвращает текущее состояние оформления.
func (f *Flow) State() string { return f.state }

// Failure возвращает ошибку последней неудачной отправки.
func (f *Flow) Failure() error { return f.failure }

// Service возвращает сервис оформления или nil.
func (f *Flow) Service() *models.Service { return f.service }

// Plan возвращает выбранный план или nil.
func (f *Flow) Plan() *models.Plan { return f.plan }

// Method возвращает выбранный метод оплаты или nil.
func (f *Flow) Method() *models.PaymentMethod { return f.method }
