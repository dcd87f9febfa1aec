// Package wallet управляет методами оплаты и кошельком пользователя.
// Кошелёк — единственная строка вида wallet в ответе бэкенда; в списках
// методов она не показывается, её баланс выводится отдельно. Суммы и
// данные карты проверяются локально до сетевого вызова.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/subsmanager/subsmanager-cli/internal/api"
	"github.com/subsmanager/subsmanager-cli/internal/lib/card"
	"github.com/subsmanager/subsmanager-cli/internal/models"
)

// Ошибки локальных проверок кошелька.
var (
	ErrInvalidAmount     = errors.New("amount must be a positive number")
	ErrNegativeBalance   = errors.New("balance cannot be negative")
	ErrMethodNotFound    = errors.New("payment method not found")
	ErrInsufficientFunds = errors.New("insufficient funds on payment method")
)

// WalletAPI описывает вызовы бэкенда, нужные кошельку и методам оплаты.
type WalletAPI interface {
	ListPaymentMethods(ctx context.Context, userID int) ([]models.PaymentMethod, error)
	AddPaymentMethod(ctx context.Context, userID int, req api.AddMethodRequest) error
	UpdatePaymentMethod(ctx context.Context, userID, methodID int, balance decimal.Decimal) error
	DeletePaymentMethod(ctx context.Context, userID, methodID int) error
	WalletTransactions(ctx context.Context, userID int) ([]models.WalletTransaction, error)
	WalletUpdate(ctx context.Context, userID int, kind string, amount decimal.Decimal) (decimal.Decimal, error)
	RechargeFromMethod(ctx context.Context, userID, methodID int, amount decimal.Decimal) error
}

// Overview — методы оплаты пользователя и баланс кошелька.
// Methods не содержит строку кошелька.
type Overview struct {
	Methods       []models.PaymentMethod
	WalletBalance decimal.Decimal
}

type Service struct {
	log *slog.Logger
	api WalletAPI
}

func New(log *slog.Logger, walletAPI WalletAPI) *Service {
	return &Service{log: log, api: walletAPI}
}

// Overview возвращает методы оплаты без строки кошелька и баланс кошелька.
func (s *Service) Overview(ctx context.Context, userID int) (*Overview, error) {
	const op = "wallet.Overview"

	methods, err := s.api.ListPaymentMethods(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	overview := &Overview{
		Methods:       make([]models.PaymentMethod, 0, len(methods)),
		WalletBalance: decimal.Zero,
	}
	for _, m := range methods {
		if m.Kind == models.MethodWallet {
			overview.WalletBalance = m.Balance
			continue
		}
		overview.Methods = append(overview.Methods, m)
	}
	return overview, nil
}

// AddCard проверяет данные карты локально и сохраняет её как метод оплаты.
// Невалидная форма не доходит до бэкенда.
func (s *Service) AddCard(ctx context.Context, userID int, form models.DummyCardMethod) error {
	const op = "wallet.AddCard"

	if err := card.ValidateNumber(form.Number); err != nil {
		return err
	}
	if err := card.ValidateHolder(form.Holder); err != nil {
		return err
	}
	if err := card.ValidateExpiry(form.Expiry); err != nil {
		return err
	}

	err := s.api.AddPaymentMethod(ctx, userID, api.AddMethodRequest{
		Kind:    models.MethodCard,
		Number:  card.CleanNumber(form.Number),
		Holder:  form.Holder,
		Expiry:  form.Expiry,
		Balance: decimal.Zero,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("card added", slog.Int("user_id", userID))
	return nil
}

// AddCash сохраняет наличный метод оплаты с начальным балансом.
func (s *Service) AddCash(ctx context.Context, userID int, balance string) error {
	const op = "wallet.AddCash"

	amount, err := parseBalance(balance)
	if err != nil {
		return err
	}

	if err := s.api.AddPaymentMethod(ctx, userID, api.AddMethodRequest{
		Kind:    models.MethodCash,
		Balance: amount,
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("cash method added", slog.Int("user_id", userID))
	return nil
}

// UpdateCashBalance изменяет баланс наличного метода. Отрицательная
// или нечисловая сумма отклоняется без сетевого вызова.
func (s *Service) UpdateCashBalance(ctx context.Context, userID, methodID int, form models.DummyCashBalance) error {
	const op = "wallet.UpdateCashBalance"

	amount, err := parseBalance(form.Balance)
	if err != nil {
		return err
	}

	if err := s.api.UpdatePaymentMethod(ctx, userID, methodID, amount); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteMethod удаляет метод оплаты.
func (s *Service) DeleteMethod(ctx context.Context, userID, methodID int) error {
	const op = "wallet.DeleteMethod"

	if err := s.api.DeletePaymentMethod(ctx, userID, methodID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("payment method deleted",
		slog.Int("user_id", userID),
		slog.Int("method_id", methodID))
	return nil
}

// Recharge пополняет кошелёк со счёта выбранного метода. Сумма обязана
// быть положительной и не превышать баланс метода-источника; обе проверки
// выполняются до сетевого вызова пополнения.
func (s *Service) Recharge(ctx context.Context, userID int, form models.DummyRecharge) error {
	const op = "wallet.Recharge"

	amount, err := decimal.NewFromString(form.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	overview, err := s.Overview(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	source, found := findMethod(overview.Methods, form.MethodID)
	if !found {
		return ErrMethodNotFound
	}
	if amount.GreaterThan(source.Balance) {
		return ErrInsufficientFunds
	}

	if err := s.api.RechargeFromMethod(ctx, userID, form.MethodID, amount); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("wallet recharged",
		slog.Int("user_id", userID),
		slog.Int("method_id", form.MethodID),
		slog.String("amount", amount.String()))
	return nil
}

// Deduct списывает сумму с кошелька и возвращает новый баланс
// по версии бэкенда.
func (s *Service) Deduct(ctx context.Context, userID int, amountStr string) (decimal.Decimal, error) {
	const op = "wallet.Deduct"

	amount, err := decimal.NewFromString(amountStr)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}

	balance, err := s.api.WalletUpdate(ctx, userID, models.TxDeduction, amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return balance, nil
}

// Transactions возвращает журнал транзакций кошелька, новые первыми.
func (s *Service) Transactions(ctx context.Context, userID int) ([]models.WalletTransaction, error) {
	const op = "wallet.Transactions"

	txs, err := s.api.WalletTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return txs, nil
}

func parseBalance(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeBalance
	}
	return amount, nil
}

func findMethod(methods []models.PaymentMethod, id int) (models.PaymentMethod, bool) {
	for _, m := range methods {
		if m.ID == id {
			return m, true
		}
	}
	return models.PaymentMethod{}, false
}
