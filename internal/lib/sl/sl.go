// Package sl содержит мелкие помощники для логгера slog,
// используемые во всех слоях приложения.
package sl

import "log/slog"

// Err оборачивает ошибку в slog.Attr с ключом "error", чтобы все
// записи об ошибках в логе выглядели одинаково.
//
// Пример:
//
//	log.Error("failed to cancel subscription", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
