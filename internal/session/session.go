// Package session хранит аутентифицированного пользователя на время работы
// клиента: личность и роль из ответа логина плюс bearer-токен. Токен
// кэшируется в файле, чтобы последовательные запуски CLI разделяли одну
// «сессию браузера»; при выходе файл удаляется. Подпись токена здесь не
// проверяется — это обязанность бэкенда, клиенту нужны только claims.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/subsmanager/subsmanager-cli/internal/api"
	"github.com/subsmanager/subsmanager-cli/internal/lib/sl"
	"github.com/subsmanager/subsmanager-cli/internal/models"
)

// Ошибки сессии.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden for this role")
	ErrExpired          = errors.New("session expired")
)

// AuthAPI описывает вызовы бэкенда, нужные сессии.
type AuthAPI interface {
	Login(ctx context.Context, form models.DummyLogin) (*api.LoginResult, error)
	Register(ctx context.Context, form models.DummyRegister) error
	ConfirmEmail(ctx context.Context, form models.DummyConfirmEmail) error
	UpdateProfile(ctx context.Context, userID int, form models.DummyProfile) error
	SetToken(token string)
}

// Claims — пользовательские данные из JWT бэкенда.
type Claims struct {
	Username             string `json:"username"`
	Role                 string `json:"role"`
	jwt.RegisteredClaims
}

// State — сериализуемое состояние сессии, содержимое файла сессии.
type State struct {
	Session models.Session `json:"session"`
	Token   string         `json:"token"`
}

// Store управляет текущей сессией.
type Store struct {
	log     *slog.Logger
	client  AuthAPI
	path    string
	current *State
}

// New создаёт Store с файлом сессии по указанному пути.
func New(log *slog.Logger, client AuthAPI, path string) *Store {
	return &Store{
		log:    log,
		client: client,
		path:   path,
	}
}

// Login выполняет вход, запоминает сессию и сохраняет её в файл.
func (s *Store) Login(ctx context.Context, form models.DummyLogin) (*models.Session, error) {
	const op = "session.Login"

	res, err := s.client.Login(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.current = &State{Session: res.Session, Token: res.Token}
	s.client.SetToken(res.Token)

	if err := s.save(); err != nil {
		s.log.Warn("failed to save session file", sl.Err(err))
	}
	s.log.Info("logged in",
		slog.String("username", res.Session.Username),
		slog.String("role", res.Session.Role))
	return &s.current.Session, nil
}

// Register регистрирует пользователя; сессия при этом не создаётся,
// вход возможен после подтверждения почты.
func (s *Store) Register(ctx context.Context, form models.DummyRegister) error {
	const op = "session.Register"
	if err := s.client.Register(ctx, form); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ConfirmEmail подтверждает почту кодом из письма.
func (s *Store) ConfirmEmail(ctx context.Context, form models.DummyConfirmEmail) error {
	const op = "session.ConfirmEmail"
	if err := s.client.ConfirmEmail(ctx, form); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateProfile обновляет данные собственного профиля и локальную сессию.
func (s *Store) UpdateProfile(ctx context.Context, form models.DummyProfile) error {
	const op = "session.UpdateProfile"

	if s.current == nil {
		return ErrNotAuthenticated
	}
	if err := s.client.UpdateProfile(ctx, s.current.Session.UserID, form); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.current.Session.Name = form.Name
	s.current.Session.Email = form.Email
	s.current.Session.Username = form.Username
	if err := s.save(); err != nil {
		s.log.Warn("failed to save session file", sl.Err(err))
	}
	return nil
}

// Load восстанавливает сессию из файла. Истёкший токен равносилен
// отсутствию сессии: файл удаляется, возвращается ErrExpired.
func (s *Store) Load() (*models.Session, error) {
	const op = "session.Load"

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	claims, err := ParseClaims(state.Token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		_ = os.Remove(s.path)
		return nil, ErrExpired
	}

	s.current = &state
	s.client.SetToken(state.Token)
	return &s.current.Session, nil
}

// Logout удаляет текущую сессию и её файл.
func (s *Store) Logout() error {
	const op = "session.Logout"

	s.current = nil
	s.client.SetToken("")
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Current возвращает текущую сессию или nil, если входа не было.
func (s *Store) Current() *models.Session {
	if s.current == nil {
		return nil
	}
	return &s.current.Session
}

// RequireRole проверяет, что пользователь вошёл и имеет требуемую роль.
func (s *Store) RequireRole(role string) error {
	if s.current == nil {
		return ErrNotAuthenticated
	}
	if s.current.Session.Role != role {
		return ErrForbidden
	}
	return nil
}

// ParseClaims разбирает JWT без проверки подписи и возвращает claims.
func ParseClaims(token string) (*Claims, error) {
	const op = "session.ParseClaims"

	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &claims, nil
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(s.current)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
