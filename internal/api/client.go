// Package api реализует клиент REST API бэкенда SubsManager.
// Вся бизнес-логика (аутентификация, хранение, проведение платежей)
// выполняется бэкендом; здесь только JSON поверх HTTP: по файлу на область,
// единый разбор конвертов ответов и текстов ошибок.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client — HTTP-клиент бэкенда. Токен выставляется сессией после логина
// и добавляется в заголовок Authorization каждого запроса.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// BackendError — ошибка, которую вернул бэкенд (не-2xx ответ).
// Message содержит текст из тела ответа дословно, если он там был.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return e.Message
}

// New создаёт новый клиент API с заданным адресом и таймаутом запросов.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetToken задаёт bearer-токен для последующих запросов.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.baseURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do выполняет запрос и декодирует тело ответа в out (если out != nil).
// Для не-2xx ответов возвращает BackendError с текстом ошибки из тела:
// поле detail или message, иначе статус ответа.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &BackendError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(body) > 0 {
		var envelope struct {
			Detail  string `json:"detail"`
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil {
			switch {
			case envelope.Detail != "":
				return envelope.Detail
			case envelope.Message != "":
				return envelope.Message
			case envelope.Error != "":
				return envelope.Error
			}
		}
	}
	return "unexpected status: " + resp.Status
}

// IsBackendError извлекает BackendError из цепочки ошибок.
func IsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
