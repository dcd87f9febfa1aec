package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subsmanager/subsmanager-cli/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"token": "jwt-token",
			"user_id": 5,
			"user_rol": "user",
			"user_name": "Ana Pérez",
			"user_email": "ana@correo.com",
			"user_username": "anaperez"
		}`))
	}))

	res, err := client.Login(context.Background(), models.DummyLogin{
		Email:    "ana@correo.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", res.Token)
	assert.Equal(t, 5, res.Session.UserID)
	assert.Equal(t, "user", res.Session.Role)
	assert.Equal(t, "anaperez", res.Session.Username)
}

func TestBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success": true, "data": []}`))
	}))
	client.SetToken("jwt-token")

	_, err := client.ListSubscriptions(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt-token", gotAuth)
}

func TestBackendErrorMessage(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "текст из поля detail дословно",
			status:  http.StatusBadRequest,
			body:    `{"detail": "Saldo insuficiente para la deducción."}`,
			wantMsg: "Saldo insuficiente para la deducción.",
		},
		{
			name:    "текст из поля message",
			status:  http.StatusInternalServerError,
			body:    `{"message": "algo salió mal"}`,
			wantMsg: "algo salió mal",
		},
		{
			name:    "нечитаемое тело заменяется статусом",
			status:  http.StatusBadGateway,
			body:    `<html>gateway</html>`,
			wantMsg: "unexpected status: 502 Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			err := client.RechargeFromMethod(context.Background(), 5, 1, mustDecimal(t, "10"))

			require.Error(t, err)
			be, ok := IsBackendError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, be.StatusCode)
			assert.Equal(t, tt.wantMsg, be.Message)
		})
	}
}

func TestCancelSubscriptionPath(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"success": true, "message": "Suscripción cancelada exitosamente"}`))
	}))

	err := client.CancelSubscription(context.Background(), 5, 42)

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/subscription/cancelled/5/42", gotPath)
}

func TestCancelSubscriptionRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "message": "La suscripción no está activa o no existe."}`))
	}))

	err := client.CancelSubscription(context.Background(), 5, 42)

	require.Error(t, err)
	be, ok := IsBackendError(err)
	require.True(t, ok)
	assert.Equal(t, "La suscripción no está activa o no existe.", be.Message)
}

func TestDeleteServicePath(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"message": "Servicio eliminado exitosamente"}`))
	}))

	err := client.DeleteService(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/admin/servicios/7", gotPath)
}
