package walletcmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/subsmanager/subsmanager-cli/internal/models"
	"github.com/subsmanager/subsmanager-cli/internal/services/wallet"
)

type WalletServiceMock struct{ mock.Mock }

func (m *WalletServiceMock) Overview(ctx context.Context, userID int) (*wallet.Overview, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Overview), args.Error(1)
}

func (m *WalletServiceMock) AddCard(ctx context.Context, userID int, form models.DummyCardMethod) error {
	return m.Called(ctx, userID, form).Error(0)
}

func (m *WalletServiceMock) AddCash(ctx context.Context, userID int, balance string) error {
	return m.Called(ctx, userID, balance).Error(0)
}

func (m *WalletServiceMock) UpdateCashBalance(ctx context.Context, userID, methodID int, form models.DummyCashBalance) error {
	return m.Called(ctx, userID, methodID, form).Error(0)
}

func (m *WalletServiceMock) DeleteMethod(ctx context.Context, userID, methodID int) error {
	return m.Called(ctx, userID, methodID).Error(0)
}

func (m *WalletServiceMock) Recharge(ctx context.Context, userID int, form models.DummyRecharge) error {
	return m.Called(ctx, userID, form).Error(0)
}

func (m *WalletServiceMock) Deduct(ctx context.Context, userID int, amount string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *WalletServiceMock) Transactions(ctx context.Context, userID int) ([]models.WalletTransaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WalletTransaction), args.Error(1)
}

type SessionMock struct{ mock.Mock }

func (m *SessionMock) Current() *models.Session {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.Session)
}

func NewNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func loggedIn() *SessionMock {
	session := new(SessionMock)
	session.On("Current").Return(&models.Session{UserID: 5, Role: "user"})
	return session
}

func cashOverview() *wallet.Overview {
	return &wallet.Overview{
		WalletBalance: decimal.NewFromFloat(20),
		Methods: []models.PaymentMethod{
			{ID: 3, Kind: models.MethodCash, Balance: decimal.NewFromFloat(40)},
		},
	}
}

func TestUpdateCash_Confirmed(t *testing.T) {
	service := new(WalletServiceMock)
	service.On("Overview", mock.Anything, 5).Return(cashOverview(), nil).Once()
	service.On("UpdateCashBalance", mock.Anything, 5, 3,
		models.DummyCashBalance{Balance: "75"}).Return(nil).Once()

	var out bytes.Buffer
	h := New(NewNoopLogger(), service, loggedIn(), strings.NewReader("y\n"), &out)

	err := h.Run(context.Background(), []string{"update-cash", "-id", "3", "-balance", "75"})

	require.NoError(t, err)
	// в вопросе показывается текущий баланс метода
	assert.Contains(t, out.String(), "from 40.00 to 75")
	assert.Contains(t, out.String(), "balance updated")
	service.AssertExpectations(t)
}

func TestUpdateCash_Declined(t *testing.T) {
	service := new(WalletServiceMock)
	service.On("Overview", mock.Anything, 5).Return(cashOverview(), nil).Once()

	var out bytes.Buffer
	h := New(NewNoopLogger(), service, loggedIn(), strings.NewReader("n\n"), &out)

	err := h.Run(context.Background(), []string{"update-cash", "-id", "3", "-balance", "75"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "aborted")
	service.AssertNotCalled(t, "UpdateCashBalance",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCash_UnknownMethod(t *testing.T) {
	service := new(WalletServiceMock)
	service.On("Overview", mock.Anything, 5).Return(cashOverview(), nil).Once()

	var out bytes.Buffer
	h := New(NewNoopLogger(), service, loggedIn(), strings.NewReader("y\n"), &out)

	err := h.Run(context.Background(), []string{"update-cash", "-id", "9", "-balance", "75"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	service.AssertNotCalled(t, "UpdateCashBalance",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCash_RequiresBalance(t *testing.T) {
	service := new(WalletServiceMock)

	var out bytes.Buffer
	h := New(NewNoopLogger(), service, loggedIn(), strings.NewReader(""), &out)

	err := h.Run(context.Background(), []string{"update-cash", "-id", "3"})

	require.Error(t, err)
	service.AssertNotCalled(t, "Overview", mock.Anything, mock.Anything)
}
