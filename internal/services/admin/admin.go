// Package admin реализует операции панели администратора: пользователи,
// сервисы каталога, подписки всех пользователей, метрики и отчёты.
// После мутаций списки не перечитываются: изменённые строки правятся
// локально поверх подтверждённого бэкендом результата.
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/subsmanager/subsmanager-cli/internal/models"
)

// AdminAPI описывает вызовы бэкенда, нужные панели администратора.
type AdminAPI interface {
	ListUsers(ctx context.Context) ([]models.AdminUser, error)
	GetUser(ctx context.Context, userID int) (*models.AdminUser, error)
	UpdateUser(ctx context.Context, userID int, form models.DummyUserEdit) error
	DeleteUser(ctx context.Context, userID int) error

	ListServices(ctx context.Context) ([]models.CatalogRow, error)
	CreateService(ctx context.Context, form models.DummyServiceForm) (int, error)
	UpdateService(ctx context.Context, serviceID int, form models.DummyServiceForm) error
	DeleteService(ctx context.Context, serviceID int) error

	ListAllSubscriptions(ctx context.Context) ([]models.AdminSubscription, error)

	Metrics(ctx context.Context) (*models.Metrics, error)
	ReportByUser(ctx context.Context) ([]models.ReportByUser, error)
	ReportByCategory(ctx context.Context) ([]models.ReportByCategory, error)
	ReportIncome(ctx context.Context) ([]models.ReportIncome, error)
	ReportSummary(ctx context.Context) (*models.ReportSummary, error)
}

type Service struct {
	log *slog.Logger
	api AdminAPI
}

func New(log *slog.Logger, adminAPI AdminAPI) *Service {
	return &Service{log: log, api: adminAPI}
}

// Users возвращает всех зарегистрированных пользователей.
func (s *Service) Users(ctx context.Context) ([]models.AdminUser, error) {
	const op = "admin.Users"

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// User возвращает пользователя по идентификатору.
func (s *Service) User(ctx context.Context, userID int) (*models.AdminUser, error) {
	const op = "admin.User"

	user, err := s.api.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateUser изменяет пользователя и возвращает список с локально
// исправленной строкой.
func (s *Service) UpdateUser(ctx context.Context, userID int, form models.DummyUserEdit, users []models.AdminUser) ([]models.AdminUser, error) {
	const op = "admin.UpdateUser"

	if err := s.api.UpdateUser(ctx, userID, form); err != nil {
		return users, fmt.Errorf("%s: %w", op, err)
	}

	updated := make([]models.AdminUser, len(users))
	copy(updated, users)
	for i := range updated {
		if updated[i].UserID != userID {
			continue
		}
		updated[i].Name = form.Name
		updated[i].Email = form.Email
		updated[i].Username = form.Username
		updated[i].Role = form.Role
		updated[i].AccountStatus = form.AccountStatus
		break
	}

	s.log.Info("user updated", slog.Int("user_id", userID))
	return updated, nil
}

// DeleteUser мягко удаляет пользователя: бэкенд переводит учётную запись
// в deleted, строка остаётся в списке с обновлённым статусом.
func (s *Service) DeleteUser(ctx context.Context, userID int, users []models.AdminUser) ([]models.AdminUser, error) {
	const op = "admin.DeleteUser"

	if err := s.api.DeleteUser(ctx, userID); err != nil {
		return users, fmt.Errorf("%s: %w", op, err)
	}

	updated := make([]models.AdminUser, len(users))
	copy(updated, users)
	for i := range updated {
		if updated[i].UserID == userID {
			updated[i].AccountStatus = models.AccountDeleted
			break
		}
	}

	s.log.Info("user deleted", slog.Int("user_id", userID))
	return updated, nil
}

// Services возвращает строки каталога для экранов администратора.
func (s *Service) Services(ctx context.Context) ([]models.CatalogRow, error) {
	const op = "admin.Services"

	rows, err := s.api.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}

// CreateService регистрирует сервис с планом и возвращает список
// с локально добавленной строкой.
func (s *Service) CreateService(ctx context.Context, form models.DummyServiceForm, rows []models.CatalogRow) ([]models.CatalogRow, error) {
	const op = "admin.CreateService"

	serviceID, err := s.api.CreateService(ctx, form)
	if err != nil {
		return rows, fmt.Errorf("%s: %w", op, err)
	}

	updated := make([]models.CatalogRow, len(rows), len(rows)+1)
	copy(updated, rows)
	updated = append(updated, models.CatalogRow{
		ServiceID:   serviceID,
		Name:        form.Name,
		Category:    form.Category,
		Description: form.Description,
		PlanType:    form.PlanType,
		Price:       decimal.NewFromFloat(form.Price),
	})

	s.log.Info("service created",
		slog.Int("service_id", serviceID),
		slog.String("name", form.Name))
	return updated, nil
}

// UpdateService изменяет сервис и возвращает список с локально
// исправленными строками этого сервиса.
func (s *Service) UpdateService(ctx context.Context, serviceID int, form models.DummyServiceForm, rows []models.CatalogRow) ([]models.CatalogRow, error) {
	const op = "admin.UpdateService"

	if err := s.api.UpdateService(ctx, serviceID, form); err != nil {
		return rows, fmt.Errorf("%s: %w", op, err)
	}

	updated := make([]models.CatalogRow, len(rows))
	copy(updated, rows)
	for i := range updated {
		if updated[i].ServiceID != serviceID {
			continue
		}
		updated[i].Name = form.Name
		updated[i].Category = form.Category
		updated[i].Description = form.Description
		updated[i].PlanType = form.PlanType
		updated[i].Price = decimal.NewFromFloat(form.Price)
	}

	s.log.Info("service updated", slog.Int("service_id", serviceID))
	return updated, nil
}

// DeleteService удаляет сервис и возвращает список без его строк.
func (s *Service) DeleteService(ctx context.Context, serviceID int, rows []models.CatalogRow) ([]models.CatalogRow, error) {
	const op = "admin.DeleteService"

	if err := s.api.DeleteService(ctx, serviceID); err != nil {
		return rows, fmt.Errorf("%s: %w", op, err)
	}

	updated := make([]models.CatalogRow, 0, len(rows))
	for _, row := range rows {
		if row.ServiceID == serviceID {
			continue
		}
		updated = append(updated, row)
	}

	s.log.Info("service deleted", slog.Int("service_id", serviceID))
	return updated, nil
}

// SubscriptionFilter — критерии отбора подписок всех пользователей.
// Пустое поле пропускает всё; DueBefore отбирает подписки с датой
// окончания не позже указанной.
type SubscriptionFilter struct {
	Status    string
	Category  string
	DueBefore string
}

// Subscriptions возвращает подписки всех пользователей,
// отфильтрованные по критериям.
func (s *Service) Subscriptions(ctx context.Context, filter SubscriptionFilter) ([]models.AdminSubscription, error) {
	const op = "admin.Subscriptions"

	subs, err := s.api.ListAllSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filtered := make([]models.AdminSubscription, 0, len(subs))
	for _, sub := range subs {
		if filter.Status != "" && sub.Status != filter.Status {
			continue
		}
		if filter.Category != "" && sub.Category != filter.Category {
			continue
		}
		if filter.DueBefore != "" && (sub.DueDate == "" || sub.DueDate > filter.DueBefore) {
			continue
		}
		filtered = append(filtered, sub)
	}
	return filtered, nil
}

// Metrics возвращает метрики панели управления.
func (s *Service) Metrics(ctx context.Context) (*models.Metrics, error) {
	const op = "admin.Metrics"

	metrics, err := s.api.Metrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return metrics, nil
}

// ReportByUser возвращает отчёт "подписки по пользователям".
func (s *Service) ReportByUser(ctx context.Context) ([]models.ReportByUser, error) {
	const op = "admin.ReportByUser"

	report, err := s.api.ReportByUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return report, nil
}

// ReportByCategory возвращает отчёт "подписки по категориям".
func (s *Service) ReportByCategory(ctx context.Context) ([]models.ReportByCategory, error) {
	const op = "admin.ReportByCategory"

	report, err := s.api.ReportByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return report, nil
}

// ReportIncome возвращает отчёт "итоговые доходы по сервисам".
func (s *Service) ReportIncome(ctx context.Context) ([]models.ReportIncome, error) {
	const op = "admin.ReportIncome"

	report, err := s.api.ReportIncome(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return report, nil
}

// ReportSummary возвращает сводный отчёт по всей системе.
func (s *Service) ReportSummary(ctx context.Context) (*models.ReportSummary, error) {
	const op = "admin.ReportSummary"

	summary, err := s.api.ReportSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return summary, nil
}
