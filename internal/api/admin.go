package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/subsmanager/subsmanager-cli/internal/models"
)

// ListUsers возвращает всех зарегистрированных пользователей.
func (c *Client) ListUsers(ctx context.Context) ([]models.AdminUser, error) {
	const op = "api.ListUsers"

	req, err := c.newRequest(ctx, http.MethodGet, "/admin/usuarios", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var payload struct {
		Users []models.AdminUser `json:"usuarios"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payload.Users, nil
}

// GetUser возвращает пользователя по идентификатору.
func (c *Client) GetUser(ctx context.Context, userID int) (*models.AdminUser, error) {
	const op = "api.GetUser"

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/admin/usuarios/%d", userID), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var payload struct {
		User models.AdminUser `json:"usuario"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &payload.User, nil
}

// UpdateUser изменяет данные пользователя.
func (c *Client) UpdateUser(ctx context.Context, userID int, form models.DummyUserEdit) error {
	const op = "api.UpdateUser"

	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/admin/usuarios/%d", userID), form)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteUser мягко удаляет пользователя: бэкенд переводит
// AccountStatus в deleted, запись остаётся.
func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	const op = "api.DeleteUser"

	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/admin/usuarios/%d", userID), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Metrics возвращает метрики панели управления.
func (c *Client) Metrics(ctx context.Context) (*models.Metrics, error) {
	const op = "api.Metrics"

	req, err := c.newRequest(ctx, http.MethodGet, "/admin/metricas", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var metrics models.Metrics
	if err := c.do(req, &metrics); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &metrics, nil
}

// ReportByUser возвращает данные отчёта "подписки по пользователям".
func (c *Client) ReportByUser(ctx context.Context) ([]models.ReportByUser, error) {
	const op = "api.ReportByUser"

	var payload struct {
		Data []models.ReportByUser `json:"data"`
	}
	if err := c.getReport(ctx, "/admin/reportes/suscripciones-por-usuario", &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payload.Data, nil
}

// ReportByCategory возвращает данные отчёта "подписки по категориям".
func (c *Client) ReportByCategory(ctx context.Context) ([]models.ReportByCategory, error) {
	const op = "api.ReportByCategory"

	var payload struct {
		Data []models.ReportByCategory `json:"data"`
	}
	if err := c.getReport(ctx, "/admin/reportes/suscripciones-por-categoria", &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payload.Data, nil
}

// ReportIncome возвращает данные отчёта "итоговые доходы по сервисам".
func (c *Client) ReportIncome(ctx context.Context) ([]models.ReportIncome, error) {
	const op = "api.ReportIncome"

	var payload struct {
		Data []models.ReportIncome `json:"data"`
	}
	if err := c.getReport(ctx, "/admin/reportes/total-ingresos", &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payload.Data, nil
}

// ReportSummary возвращает сводный отчёт по всей системе.
func (c *Client) ReportSummary(ctx context.Context) (*models.ReportSummary, error) {
	const op = "api.ReportSummary"

	var summary models.ReportSummary
	if err := c.getReport(ctx, "/admin/reportes/resumen", &summary); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &summary, nil
}

func (c *Client) getReport(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}
