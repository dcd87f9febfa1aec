// Package ledger работает с историей подписок пользователя: фильтрация
// по статусу, категории и диапазону дат, отмена активной подписки.
// После отмены список не перечитывается: отменённая строка правится
// локально — статус cancelled, дата окончания сегодня.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/subsmanager/subsmanager-cli/internal/models"
)

const dateLayout = "2006-01-02"

// LedgerAPI описывает вызовы бэкенда, нужные истории подписок.
type LedgerAPI interface {
	ListSubscriptions(ctx context.Context, userID int) ([]models.Subscription, error)
	CancelSubscription(ctx context.Context, userID, subscriptionID int) error
}

// Filter — критерии отбора строк истории. Пустое поле пропускает всё.
// Диапазон дат считается совпавшим, если в него попадает дата начала
// ИЛИ дата окончания подписки.
type Filter struct {
	Status   string
	Category string
	From     string
	To       string
}

type Service struct {
	log *slog.Logger
	api LedgerAPI
	now func() time.Time
}

func New(log *slog.Logger, ledgerAPI LedgerAPI) *Service {
	return &Service{log: log, api: ledgerAPI, now: time.Now}
}

// List возвращает историю подписок, отфильтрованную по критериям.
func (s *Service) List(ctx context.Context, userID int, filter Filter) ([]models.Subscription, error) {
	const op = "ledger.List"

	subs, err := s.api.ListSubscriptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	from, to, err := filter.dateRange()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filtered := make([]models.Subscription, 0, len(subs))
	for _, sub := range subs {
		if filter.Status != "" && sub.Status != filter.Status {
			continue
		}
		if filter.Category != "" && sub.Category != filter.Category {
			continue
		}
		if !matchesRange(sub, from, to) {
			continue
		}
		filtered = append(filtered, sub)
	}
	return filtered, nil
}

// Cancel отменяет подписку и возвращает список с локально исправленной
// строкой: статус cancelled, дата окончания сегодня. Остальные строки
// не трогаются, перечитывания с бэкенда нет.
func (s *Service) Cancel(ctx context.Context, userID, subscriptionID int, subs []models.Subscription) ([]models.Subscription, error) {
	const op = "ledger.Cancel"

	if err := s.api.CancelSubscription(ctx, userID, subscriptionID); err != nil {
		return subs, fmt.Errorf("%s: %w", op, err)
	}

	updated := make([]models.Subscription, len(subs))
	copy(updated, subs)
	today := s.now().Format(dateLayout)
	for i := range updated {
		if updated[i].SubscriptionID == subscriptionID {
			updated[i].Status = models.StatusCancelled
			updated[i].EndDate = today
			break
		}
	}

	s.log.Info("subscription cancelled",
		slog.Int("user_id", userID),
		slog.Int("subscription_id", subscriptionID))
	return updated, nil
}

// Categories возвращает категории истории подписок без повторов,
// в порядке первого появления.
func (s *Service) Categories(ctx context.Context, userID int) ([]string, error) {
	const op = "ledger.Categories"

	subs, err := s.api.ListSubscriptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, sub := range subs {
		if _, ok := seen[sub.Category]; ok {
			continue
		}
		seen[sub.Category] = struct{}{}
		categories = append(categories, sub.Category)
	}
	return categories, nil
}

func (f Filter) dateRange() (from, to *time.Time, err error) {
	if f.From != "" {
		t, err := time.Parse(dateLayout, f.From)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid from date: %w", err)
		}
		from = &t
	}
	if f.To != "" {
		t, err := time.Parse(dateLayout, f.To)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid to date: %w", err)
		}
		to = &t
	}
	return from, to, nil
}

func matchesRange(sub models.Subscription, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	return dateInRange(sub.StartDate, from, to) || dateInRange(sub.EndDate, from, to)
}

func dateInRange(dateStr string, from, to *time.Time) bool {
	if dateStr == "" {
		return false
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return false
	}
	if from != nil && date.Before(*from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}
