// Package card реализует локальные проверки данных банковской карты:
// номер из 16 цифр после удаления пробелов и срок действия в формате MM/YY.
// Это UX-барьер перед сетевым вызовом, авторитетная проверка — на бэкенде.
package card

import (
	"errors"
	"strings"
	"unicode"
)

// Ошибки локальной валидации карты.
var (
	ErrNumberLength  = errors.New("card number must have 16 digits")
	ErrNumberDigits  = errors.New("card number can contain only digits")
	ErrHolderMissing = errors.New("card holder name is required")
	ErrExpiryFormat  = errors.New("expiry must match MM/YY")
)

// CleanNumber удаляет из номера карты все пробельные символы.
func CleanNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, number)
}

// ValidateNumber проверяет очищенный номер карты: ровно 16 цифр.
func ValidateNumber(number string) error {
	cleaned := CleanNumber(number)
	if len(cleaned) != 16 {
		return ErrNumberLength
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return ErrNumberDigits
		}
	}
	return nil
}

// ValidateHolder проверяет, что имя владельца не пустое.
func ValidateHolder(holder string) error {
	if strings.TrimSpace(holder) == "" {
		return ErrHolderMissing
	}
	return nil
}

// ValidateExpiry проверяет срок действия: ровно MM/YY, обе части цифровые.
func ValidateExpiry(expiry string) error {
	if len(expiry) != 5 || expiry[2] != '/' {
		return ErrExpiryFormat
	}
	for _, i := range []int{0, 1, 3, 4} {
		if expiry[i] < '0' || expiry[i] > '9' {
			return ErrExpiryFormat
		}
	}
	return nil
}

// Mask возвращает номер карты с видимыми последними четырьмя цифрами,
// как он показывается в списке методов оплаты.
func Mask(number string) string {
	cleaned := CleanNumber(number)
	if len(cleaned) < 4 {
		return cleaned
	}
	return "**** **** **** " + cleaned[len(cleaned)-4:]
}
