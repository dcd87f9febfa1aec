package subscribecmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/subsmanager/subsmanager-cli/internal/api"
	"github.com/subsmanager/subsmanager-cli/internal/models"
	"github.com/subsmanager/subsmanager-cli/internal/services/checkout"
	"github.com/subsmanager/subsmanager-cli/internal/services/wallet"
)

type CatalogMock struct{ mock.Mock }

func (m *CatalogMock) List(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

type MethodsMock struct{ mock.Mock }

func (m *MethodsMock) Overview(ctx context.Context, userID int) (*wallet.Overview, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Overview), args.Error(1)
}

type PayAPIMock struct{ mock.Mock }

func (m *PayAPIMock) PayPlan(ctx context.Context, userID int, req api.PayPlanRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

type SessionMock struct{ sess *models.Session }

func (m *SessionMock) Current() *models.Session { return m.sess }

func NewNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func testCatalog() []models.Service {
	return []models.Service{
		{
			ServiceID: 1, Name: "Netflix", Category: "Streaming",
			Plans: []models.Plan{
				{PlanID: "1-monthly", ServiceID: 1, PlanType: "monthly", Price: decimal.NewFromFloat(15)},
			},
		},
	}
}

func newHandler(t *testing.T, walletBalance float64, payAPI *PayAPIMock, out io.Writer) *Handler {
	t.Helper()
	catalogMock := new(CatalogMock)
	catalogMock.On("List", mock.Anything).Return(testCatalog(), nil)

	methodsMock := new(MethodsMock)
	methodsMock.On("Overview", mock.Anything, 5).Return(&wallet.Overview{
		Methods: []models.PaymentMethod{
			{ID: 1, Kind: models.MethodCard, MaskedNumber: "**** **** **** 1234"},
		},
		WalletBalance: decimal.NewFromFloat(walletBalance),
	}, nil)

	flow := checkout.New(NewNoopLogger(), payAPI)
	sess := &SessionMock{sess: &models.Session{UserID: 5, Role: models.RoleUser, Username: "anaperez"}}
	return New(NewNoopLogger(), catalogMock, methodsMock, flow, sess, out)
}

func TestRun_WalletEnoughBalance(t *testing.T) {
	payAPI := new(PayAPIMock)
	payAPI.On("PayPlan", mock.Anything, 5, mock.MatchedBy(func(req api.PayPlanRequest) bool {
		return req.ServiceID == 1 && req.PlanType == "monthly" && req.PaymentMethod == models.MethodWallet
	})).Return(nil).Once()

	var out bytes.Buffer
	h := newHandler(t, 20, payAPI, &out)

	err := h.Run(context.Background(), []string{"-plan", "1-monthly", "-method", "wallet"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "subscribed to Netflix")
	payAPI.AssertExpectations(t)
}

func TestRun_WalletInsufficientBalance(t *testing.T) {
	payAPI := new(PayAPIMock)

	var out bytes.Buffer
	h := newHandler(t, 10, payAPI, &out)

	err := h.Run(context.Background(), []string{"-plan", "1-monthly", "-method", "wallet"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient wallet balance")
	payAPI.AssertNotCalled(t, "PayPlan", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_SavedCardMethod(t *testing.T) {
	payAPI := new(PayAPIMock)
	payAPI.On("PayPlan", mock.Anything, 5, mock.MatchedBy(func(req api.PayPlanRequest) bool {
		return req.PaymentMethod == models.MethodCard
	})).Return(nil).Once()

	var out bytes.Buffer
	h := newHandler(t, 0, payAPI, &out)

	err := h.Run(context.Background(), []string{"-plan", "1-monthly", "-method-id", "1"})

	require.NoError(t, err)
	payAPI.AssertExpectations(t)
}

func TestRun_UnknownPlan(t *testing.T) {
	var out bytes.Buffer
	h := newHandler(t, 20, new(PayAPIMock), &out)

	err := h.Run(context.Background(), []string{"-plan", "9-monthly", "-method", "wallet"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in catalog")
}

func TestRun_BackendRejectsPayment(t *testing.T) {
	payAPI := new(PayAPIMock)
	payAPI.On("PayPlan", mock.Anything, 5, mock.Anything).
		Return(&api.BackendError{StatusCode: 400, Message: "Saldo insuficiente para la deducción."}).Once()

	var out bytes.Buffer
	h := newHandler(t, 100, payAPI, &out)

	err := h.Run(context.Background(), []string{"-plan", "1-monthly", "-method", "wallet"})

	require.Error(t, err)
	// текст ошибки бэкенда показывается дословно
	assert.Equal(t, "Saldo insuficiente para la deducción.", err.Error())
}

func TestRun_NotLoggedIn(t *testing.T) {
	var out bytes.Buffer
	h := New(NewNoopLogger(), new(CatalogMock), new(MethodsMock),
		checkout.New(NewNoopLogger(), new(PayAPIMock)), &SessionMock{}, &out)

	err := h.Run(context.Background(), []string{"-plan", "1-monthly", "-method", "wallet"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}
