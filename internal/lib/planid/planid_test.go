package planid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		planID    string
		serviceID int
		planType  string
		wantErr   bool
	}{
		{name: "месячный план", planID: "7-monthly", serviceID: 7, planType: "monthly"},
		{name: "годовой план", planID: "12-annual", serviceID: 12, planType: "annual"},
		{name: "неизвестный суффикс сохраняется", planID: "3-notmonthly", serviceID: 3, planType: "notmonthly"},
		{name: "нет разделителя", planID: "monthly", wantErr: true},
		{name: "нечисловой идентификатор сервиса", planID: "abc-monthly", wantErr: true},
		{name: "пустой тип плана", planID: "5-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceID, planType, err := Parse(tt.planID)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.serviceID, serviceID)
			assert.Equal(t, tt.planType, planType)
		})
	}
}

func TestPeriodEnd(t *testing.T) {
	start := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		planType string
		want     time.Time
	}{
		{name: "месячный: плюс один месяц", planType: "monthly", want: time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)},
		{name: "годовой: плюс двенадцать месяцев", planType: "annual", want: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)},
		{name: "неизвестный тип считается годовым", planType: "notmonthly", want: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PeriodEnd(start, tt.planType))
		})
	}
}

func TestMonths(t *testing.T) {
	assert.Equal(t, 1, Months("monthly"))
	assert.Equal(t, 12, Months("annual"))
	assert.Equal(t, 12, Months("whatever"))
}

func TestCompose(t *testing.T) {
	assert.Equal(t, "7-monthly", Compose(7, "monthly"))

	serviceID, planType, err := Parse(Compose(42, "annual"))
	assert.NoError(t, err)
	assert.Equal(t, 42, serviceID)
	assert.Equal(t, "annual", planType)
}
