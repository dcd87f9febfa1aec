// Package subsmanager собирает приложение целиком: клиент бэкенда,
// хранилище сессии, сервисы и реестр команд.
package subsmanager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"log/slog"

	"github.com/subsmanager/subsmanager-cli/internal/api"
	"github.com/subsmanager/subsmanager-cli/internal/config"
	"github.com/subsmanager/subsmanager-cli/internal/lib/sl"
	"github.com/subsmanager/subsmanager-cli/internal/session"
)

// Command — одна команда верхнего уровня.
type Command interface {
	Run(ctx context.Context, args []string) error
}

type App struct {
	logger   *slog.Logger
	store    *session.Store
	commands map[string]Command
}

// New собирает приложение: клиент API, хранилище сессии и команды.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	client := api.New(cfg.BaseURL, cfg.Timeout)

	tokenPath := cfg.TokenPath
	if !filepath.IsAbs(tokenPath) {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve token path: %w", err)
		}
		tokenPath = filepath.Join(home, tokenPath)
	}
	store := session.New(logger, client, tokenPath)

	return &App{
		logger:   logger,
		store:    store,
		commands: RegisterCommands(logger, client, store, os.Stdin, os.Stdout),
	}, nil
}

// Run восстанавливает сессию из файла и выполняет команду.
// Отсутствие сессии не мешает командам, которые её не требуют.
func (a *App) Run(ctx context.Context, args []string) error {
	if _, err := a.store.Load(); err != nil {
		switch {
		case errors.Is(err, session.ErrNotAuthenticated):
			a.logger.Debug("no stored session")
		case errors.Is(err, session.ErrExpired):
			a.logger.Info("stored session expired, log in again")
		default:
			a.logger.Warn("failed to load session", sl.Err(err))
		}
	}

	if len(args) == 0 {
		return fmt.Errorf("usage: subsmanager <%s> [flags]", strings.Join(a.commandNames(), "|"))
	}
	cmd, ok := a.commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q, expected one of: %s",
			args[0], strings.Join(a.commandNames(), ", "))
	}
	return cmd.Run(ctx, args[1:])
}

func (a *App) commandNames() []string {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
