package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/subsmanager/subsmanager-cli/internal/models"
)

// ListSubscriptions возвращает историю подписок пользователя, новые первыми.
func (c *Client) ListSubscriptions(ctx context.Context, userID int) ([]models.Subscription, error) {
	const op = "api.ListSubscriptions"

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/subscription/%d", userID), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var payload struct {
		Success bool                  `json:"success"`
		Data    []models.Subscription `json:"data"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payload.Data, nil
}

// CancelSubscription переводит активную подписку в cancelled; бэкенд
// ставит датой окончания текущий день. Неактивная подписка — ошибка.
func (c *Client) CancelSubscription(ctx context.Context, userID, subscriptionID int) error {
	const op = "api.CancelSubscription"

	path := fmt.Sprintf("/subscription/cancelled/%d/%d", userID, subscriptionID)
	req, err := c.newRequest(ctx, http.MethodPut, path, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.do(req, &payload); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !payload.Success {
		return fmt.Errorf("%s: %w", op, &BackendError{StatusCode: http.StatusOK, Message: payload.Message})
	}
	return nil
}

// ListAllSubscriptions возвращает подписки всех пользователей
// для экранов фильтрации администратора.
func (c *Client) ListAllSubscriptions(ctx context.Context) ([]models.AdminSubscription, error) {
	const op = "api.ListAllSubscriptions"

	req, err := c.newRequest(ctx, http.MethodGet, "/admin/suscripciones", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var payload struct {
		Subscriptions []models.AdminSubscription `json:"suscripciones"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payload.Subscriptions, nil
}

// PayPlanRequest — запрос POST /pay/plan/{userId}: оформление подписки
// с оплатой выбранным методом. Даты в формате 2006-01-02.
type PayPlanRequest struct {
	ServiceID     int             `json:"service_id"`
	PlanType      string          `json:"plan_type"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
}

// PayPlan оплачивает план и создаёт подписку. Список подписок
// клиент после успеха перечитывает отдельным запросом.
func (c *Client) PayPlan(ctx context.Context, userID int, payReq PayPlanRequest) error {
	const op = "api.PayPlan"

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/pay/plan/%d", userID), payReq)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.do(req, &payload); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !payload.Success {
		return fmt.Errorf("%s: %w", op, &BackendError{StatusCode: http.StatusOK, Message: payload.Message})
	}
	return nil
}
