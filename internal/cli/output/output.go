// Package output содержит вспомогательные функции вывода команд:
// табличный вывод и единый формат сообщений об ошибках. Текст ошибок
// бэкенда показывается дословно; сетевые сбои заменяются одним
// фиксированным сообщением без технических деталей.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/go-playground/validator"

	"github.com/subsmanager/subsmanager-cli/internal/api"
)

// TransportErrorMessage — сообщение для любого сбоя соединения с бэкендом.
const TransportErrorMessage = "could not reach the server, try again later"

// Table печатает строки колонками, выровненными табуляцией.
func Table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Confirm печатает вопрос и читает ответ из r. Подтверждением считаются
// только "y" и "yes" без учёта регистра; пустой ввод и конец потока —
// отказ.
func Confirm(r io.Reader, w io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(w, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// UserMessage возвращает текст ошибки для показа пользователю.
// Ошибка бэкенда — дословно, ошибки валидации — списком полей,
// сетевой сбой — фиксированным сообщением, остальное — как есть.
func UserMessage(err error) string {
	if be, ok := api.IsBackendError(err); ok {
		return be.Message
	}
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		return ValidationMessage(verr)
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return TransportErrorMessage
	}
	return err.Error()
}

// ValidationMessage собирает сообщение из ошибок валидации формы.
func ValidationMessage(errs validator.ValidationErrors) string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			fields = append(fields, fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			fields = append(fields, fmt.Sprintf("field %s must be a valid email", e.Field()))
		default:
			fields = append(fields, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}
	return strings.Join(fields, "; ")
}
