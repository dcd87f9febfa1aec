package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/subsmanager/subsmanager-cli/internal/models"
)

// ListServices возвращает строки каталога: сервис и план соединены,
// по строке на каждый план сервиса. Каталог у бэкенда один и тот же
// для пользователя и администратора.
func (c *Client) ListServices(ctx context.Context) ([]models.CatalogRow, error) {
	const op = "api.ListServices"

	req, err := c.newRequest(ctx, http.MethodGet, "/admin/servicios", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var payload struct {
		Services []models.CatalogRow `json:"servicios"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payload.Services, nil
}

// CreateService регистрирует новый сервис вместе с его планом
// и возвращает идентификатор созданного сервиса.
func (c *Client) CreateService(ctx context.Context, form models.DummyServiceForm) (int, error) {
	const op = "api.CreateService"

	req, err := c.newRequest(ctx, http.MethodPost, "/admin/servicios", form)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var payload struct {
		ServiceID int `json:"service_id"`
	}
	if err := c.do(req, &payload); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return payload.ServiceID, nil
}

// UpdateService обновляет сервис и его план.
func (c *Client) UpdateService(ctx context.Context, serviceID int, form models.DummyServiceForm) error {
	const op = "api.UpdateService"

	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/admin/servicios/%d", serviceID), form)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteService удаляет сервис вместе с его планом.
func (c *Client) DeleteService(ctx context.Context, serviceID int) error {
	const op = "api.DeleteService"

	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/admin/servicios/%d", serviceID), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
