package ledgercmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/subsmanager/subsmanager-cli/internal/models"
	"github.com/subsmanager/subsmanager-cli/internal/services/ledger"
)

type LedgerServiceMock struct{ mock.Mock }

func (m *LedgerServiceMock) List(ctx context.Context, userID int, filter ledger.Filter) ([]models.Subscription, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (m *LedgerServiceMock) Cancel(ctx context.Context, userID, subscriptionID int, subs []models.Subscription) ([]models.Subscription, error) {
	args := m.Called(ctx, userID, subscriptionID, subs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscription), args.Error(1)
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

func TestCancel_Confirmed(t *testing.T) {
	subs := []models.Subscription{
		{SubscriptionID: 7, ServiceName: "Netflix", Category: "Streaming", Status: "active"},
	}
	cancelled := []models.Subscription{
		{SubscriptionID: 7, ServiceName: "Netflix", Category: "Streaming", Status: "cancelled"},
	}

	service := new(LedgerServiceMock)
	service.On("List", mock.Anything, 5, ledger.Filter{}).Return(subs, nil).Once()
	service.On("Cancel", mock.Anything, 5, 7, subs).Return(cancelled, nil).Once()

	var out bytes.Buffer
	h := New(NewNoopLogger(), service, loggedIn(), strings.NewReader("y\n"), &out)

	err := h.Run(context.Background(), []string{"cancel", "-id", "7"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "cancel subscription 7?")
	assert.Contains(t, out.String(), "subscription cancelled")
	service.AssertExpectations(t)
}

func TestCancel_Declined(t *testing.T) {
	service := new(LedgerServiceMock)

	var out bytes.Buffer
	h := New(NewNoopLogger(), service, loggedIn(), strings.NewReader("n\n"), &out)

	err := h.Run(context.Background(), []string{"cancel", "-id", "7"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "aborted")
	service.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel_EmptyAnswerDeclines(t *testing.T) {
	service := new(LedgerServiceMock)

	var out bytes.Buffer
	h := New(NewNoopLogger(), service, loggedIn(), strings.NewReader("\n"), &out)

	err := h.Run(context.Background(), []string{"cancel", "-id", "7"})

	require.NoError(t, err)
	service.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel_RequiresID(t *testing.T) {
	var out bytes.Buffer
	h := New(NewNoopLogger(), new(LedgerServiceMock), loggedIn(), strings.NewReader(""), &out)

	err := h.Run(context.Background(), []string{"cancel"})

	assert.Error(t, err)
}

func TestList_NotLoggedIn(t *testing.T) {
	session := new(SessionMock)
	session.On("Current").Return(nil).Once()

	var out bytes.Buffer
	h := New(NewNoopLogger(), new(LedgerServiceMock), session, strings.NewReader(""), &out)

	err := h.Run(context.Background(), []string{"list"})

	assert.Error(t, err)
}
