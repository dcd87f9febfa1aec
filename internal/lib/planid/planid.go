// Package planid работает с составными идентификаторами планов вида
// "{serviceId}-{planType}". Контракт: planType равен ровно "monthly",
// любой другой суффикс трактуется как годовой план.
package planid

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Типы планов.
const (
	Monthly = "monthly"
	Annual  = "annual"
)

// Parse разбирает составной идентификатор плана и возвращает идентификатор
// сервиса и тип плана. Идентификатор без разделителя — ошибка.
func Parse(planID string) (int, string, error) {
	const op = "planid.Parse"
	idStr, planType, found := strings.Cut(planID, "-")
	if !found {
		return 0, "", fmt.Errorf("%s: %q has no separator", op, planID)
	}
	serviceID, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", op, err)
	}
	if planType == "" {
		return 0, "", fmt.Errorf("%s: %q has empty plan type", op, planID)
	}
	return serviceID, planType, nil
}

// IsMonthly сообщает, является ли план месячным. Всё, что не "monthly",
// считается годовым.
func IsMonthly(planType string) bool {
	return planType == Monthly
}

// Months возвращает длину периода плана в месяцах: 1 для месячного,
// 12 для любого другого.
func Months(planType string) int {
	if IsMonthly(planType) {
		return 1
	}
	return 12
}

// PeriodEnd возвращает дату окончания периода: start плюс 1 месяц
// для месячного плана и плюс 12 месяцев для годового.
func PeriodEnd(start time.Time, planType string) time.Time {
	return start.AddDate(0, Months(planType), 0)
}

// Compose собирает составной идентификатор из идентификатора сервиса и типа плана.
func Compose(serviceID int, planType string) string {
	return fmt.Sprintf("%d-%s", serviceID, planType)
}
