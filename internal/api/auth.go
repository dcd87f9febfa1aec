package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/subsmanager/subsmanager-cli/internal/models"
)

// LoginResult — ответ POST /login: токен и данные пользователя.
type LoginResult struct {
	Token   string `json:"token"`
	Session models.Session
}

// Login выполняет вход и возвращает токен вместе с данными сессии.
func (c *Client) Login(ctx context.Context, form models.DummyLogin) (*LoginResult, error) {
	const op = "api.Login"

	req, err := c.newRequest(ctx, http.MethodPost, "/login", form)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var payload struct {
		Token string `json:"token"`
		models.Session
	}
	if err := c.do(req, &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &LoginResult{Token: payload.Token, Session: payload.Session}, nil
}

// Register регистрирует нового пользователя. Бэкенд отправляет на почту
// код подтверждения, который затем передаётся в ConfirmEmail.
func (c *Client) Register(ctx context.Context, form models.DummyRegister) error {
	const op = "api.Register"

	req, err := c.newRequest(ctx, http.MethodPost, "/register", form)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ConfirmEmail подтверждает почту кодом из письма.
func (c *Client) ConfirmEmail(ctx context.Context, form models.DummyConfirmEmail) error {
	const op = "api.ConfirmEmail"

	req, err := c.newRequest(ctx, http.MethodPost, "/confirmEmail", form)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateProfile обновляет данные собственного профиля пользователя.
func (c *Client) UpdateProfile(ctx context.Context, userID int, form models.DummyProfile) error {
	const op = "api.UpdateProfile"

	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/update_user/%d", userID), form)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
