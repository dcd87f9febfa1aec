// Package catalog собирает каталог сервисов из строк бэкенда.
// Бэкенд отдаёт сервис и план соединёнными, по строке на план;
// сервис группирует строки обратно в сервисы с планами.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/subsmanager/subsmanager-cli/internal/lib/planid"
	"github.com/subsmanager/subsmanager-cli/internal/models"
)

// CatalogAPI описывает вызовы бэкенда, нужные каталогу.
type CatalogAPI interface {
	ListServices(ctx context.Context) ([]models.CatalogRow, error)
}

type Service struct {
	log *slog.Logger
	api CatalogAPI
}

func New(log *slog.Logger, api CatalogAPI) *Service {
	return &Service{log: log, api: api}
}

// List возвращает сервисы каталога с их планами в порядке ответа бэкенда.
func (s *Service) List(ctx context.Context) ([]models.Service, error) {
	const op = "catalog.List"

	rows, err := s.api.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	services := groupRows(rows)
	s.log.Debug("catalog loaded",
		slog.Int("rows", len(rows)),
		slog.Int("services", len(services)))
	return services, nil
}

// Search возвращает сервисы, подходящие под поиск по названию и фильтр
// по категории. Пустая строка поиска и пустая категория пропускают всё.
func (s *Service) Search(ctx context.Context, query, category string) ([]models.Service, error) {
	const op = "catalog.Search"

	services, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	filtered := make([]models.Service, 0, len(services))
	for _, svc := range services {
		if query != "" && !strings.Contains(strings.ToLower(svc.Name), query) {
			continue
		}
		if category != "" && svc.Category != category {
			continue
		}
		filtered = append(filtered, svc)
	}
	return filtered, nil
}

// Categories возвращает категории каталога без повторов,
// в порядке первого появления.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	const op = "catalog.Categories"

	services, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, svc := range services {
		if _, ok := seen[svc.Category]; ok {
			continue
		}
		seen[svc.Category] = struct{}{}
		categories = append(categories, svc.Category)
	}
	return categories, nil
}

// FindPlan ищет план по составному идентификатору среди сервисов каталога.
func FindPlan(services []models.Service, planID string) (*models.Plan, bool) {
	for i := range services {
		for j := range services[i].Plans {
			if services[i].Plans[j].PlanID == planID {
				return &services[i].Plans[j], true
			}
		}
	}
	return nil, false
}

func groupRows(rows []models.CatalogRow) []models.Service {
	index := make(map[int]int)
	services := make([]models.Service, 0, len(rows))
	for _, row := range rows {
		pos, ok := index[row.ServiceID]
		if !ok {
			pos = len(services)
			index[row.ServiceID] = pos
			services = append(services, models.Service{
				ServiceID:   row.ServiceID,
				Name:        row.Name,
				Category:    row.Category,
				Description: row.Description,
			})
		}
		services[pos].Plans = append(services[pos].Plans, models.Plan{
			PlanID:    planid.Compose(row.ServiceID, row.PlanType),
			ServiceID: row.ServiceID,
			PlanType:  row.PlanType,
			Price:     row.Price,
		})
	}
	return services
}
