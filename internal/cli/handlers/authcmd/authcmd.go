// Package authcmd реализует команды аутентификации: вход, регистрация,
// подтверждение почты, профиль и выход.
package authcmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/subsmanager/subsmanager-cli/internal/cli/output"
	"github.com/subsmanager/subsmanager-cli/internal/lib/sl"
	"github.com/subsmanager/subsmanager-cli/internal/models"
)

// SessionService описывает интерфейс управления сессией пользователя.
type SessionService interface {
	Login(ctx context.Context, form models.DummyLogin) (*models.Session, error)
	Register(ctx context.Context, form models.DummyRegister) error
	ConfirmEmail(ctx context.Context, form models.DummyConfirmEmail) error
	UpdateProfile(ctx context.Context, form models.DummyProfile) error
	Load() (*models.Session, error)
	Logout() error
	Current() *models.Session
}

// Handler управляет командами аутентификации.
type Handler struct {
	log      *slog.Logger
	service  SessionService
	validate *validator.Validate
	out      io.Writer
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service SessionService, out io.Writer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
		out:      out,
	}
}

// Run выполняет подкоманду аутентификации.
func (h *Handler) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: auth <login|register|confirm|profile|whoami|logout>")
	}
	switch args[0] {
	case "login":
		return h.login(ctx, args[1:])
	case "register":
		return h.register(ctx, args[1:])
	case "confirm":
		return h.confirm(ctx, args[1:])
	case "profile":
		return h.profile(ctx, args[1:])
	case "whoami":
		return h.whoami()
	case "logout":
		return h.logout()
	default:
		return fmt.Errorf("unknown auth command: %s", args[0])
	}
}

func (h *Handler) login(ctx context.Context, args []string) error {
	const op = "handlers.auth.login"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(h.out)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := models.DummyLogin{Email: *email, Password: *password}
	if err := h.validate.Struct(form); err != nil {
		log.Error("validation failed", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	sess, err := h.service.Login(ctx, form)
	if err != nil {
		log.Error("login failed", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	fmt.Fprintf(h.out, "logged in as %s (%s)\n", sess.Username, sess.Role)
	return nil
}

func (h *Handler) register(ctx context.Context, args []string) error {
	const op = "handlers.auth.register"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(h.out)
	username := fs.String("username", "", "unique username")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password, at least 8 characters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := models.DummyRegister{
		Username: *username,
		Name:     *name,
		Email:    *email,
		Password: *password,
	}
	if err := h.validate.Struct(form); err != nil {
		log.Error("validation failed", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	if err := h.service.Register(ctx, form); err != nil {
		log.Error("register failed", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	fmt.Fprintln(h.out, "registered, check your email for the confirmation code")
	return nil
}

func (h *Handler) confirm(ctx context.Context, args []string) error {
	const op = "handlers.auth.confirm"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("confirm", flag.ContinueOnError)
	fs.SetOutput(h.out)
	email := fs.String("email", "", "account email")
	code := fs.String("code", "", "confirmation code from the email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := models.DummyConfirmEmail{Email: *email, Code: *code}
	if err := h.validate.Struct(form); err != nil {
		log.Error("validation failed", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	if err := h.service.ConfirmEmail(ctx, form); err != nil {
		log.Error("confirm failed", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	fmt.Fprintln(h.out, "email confirmed, you can log in now")
	return nil
}

func (h *Handler) profile(ctx context.Context, args []string) error {
	const op = "handlers.auth.profile"
	log := h.log.With(slog.String("op", op))

	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	fs.SetOutput(h.out)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	username := fs.String("username", "", "unique username")
	password := fs.String("password", "", "new password, empty keeps the current one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := models.DummyProfile{
		Name:     *name,
		Email:    *email,
		Username: *username,
		Password: *password,
	}
	if err := h.validate.Struct(form); err != nil {
		log.Error("validation failed", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	if err := h.service.UpdateProfile(ctx, form); err != nil {
		log.Error("profile update failed", sl.Err(err))
		return fmt.Errorf("%s", output.UserMessage(err))
	}

	fmt.Fprintln(h.out, "profile updated")
	return nil
}

func (h *Handler) whoami() error {
	sess := h.service.Current()
	if sess == nil {
		fmt.Fprintln(h.out, "not logged in")
		return nil
	}
	fmt.Fprintf(h.out, "%s <%s> role=%s\n", sess.Username, sess.Email, sess.Role)
	return nil
}

func (h *Handler) logout() error {
	const op = "handlers.auth.logout"

	if err := h.service.Logout(); err != nil {
		h.log.Error("logout failed", slog.String("op", op), sl.Err(err))
		return err
	}
	fmt.Fprintln(h.out, "logged out")
	return nil
}
