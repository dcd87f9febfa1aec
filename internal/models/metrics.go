package models

import "github.com/shopspring/decimal"

// Metrics представляет ответ GET /admin/metricas для панели управления.
type Metrics struct {
	TotalUsers     int              `json:"total_users"`
	TopServices    []TopService     `json:"top_services"`
	MonthlyRevenue []MonthlyRevenue `json:"ingresos_por_mes"`
	StatusCounts   StatusCounts     `json:"suscripciones_status"`
}

// TopService — сервис из топа по числу подписок.
type TopService struct {
	ServiceID     int    `json:"ServiceId"`
	Name          string `json:"Name"`
	Subscriptions int    `json:"suscripciones"`
}

// MonthlyRevenue — доход за месяц в формате YYYY-MM.
type MonthlyRevenue struct {
	Month   string          `json:"mes"`
	Revenue decimal.Decimal `json:"ingresos"`
}

// StatusCounts — количество активных и неактивных подписок.
type StatusCounts struct {
	Active   int `json:"activas"`
	Inactive int `json:"inactivas"`
}

// ReportByUser — строка отчёта "подписки по пользователям".
type ReportByUser struct {
	User        string `json:"Usuario"`
	ServiceName string `json:"Servicio"`
	Category    string `json:"Categoria"`
	PlanType    string `json:"TipoPlan"`
	Status      string `json:"Estado"`
}

// ReportByCategory — строка отчёта "подписки по категориям".
type ReportByCategory struct {
	Category           string          `json:"Categoria"`
	ServiceName        string          `json:"Servicio"`
	TotalSubscriptions int             `json:"TotalSuscripciones"`
	Active             int             `json:"Activas"`
	Cancelled          int             `json:"Canceladas"`
	Expired            int             `json:"Expiradas"`
	Revenue            decimal.Decimal `json:"IngresosPorServicio"`
}

// ReportIncome — строка отчёта "итоговые доходы по сервисам".
type ReportIncome struct {
	ServiceName        string          `json:"Servicio"`
	Category           string          `json:"Categoria"`
	TotalSubscriptions int             `json:"TotalSuscripciones"`
	TotalRevenue       decimal.Decimal `json:"IngresosTotales"`
	AverageRevenue     decimal.Decimal `json:"PromedioIngreso"`
}

// ReportSummary — сводный отчёт по всей системе.
type ReportSummary struct {
	TotalUsers          int             `json:"total_usuarios"`
	TotalServices       int             `json:"total_servicios"`
	TotalSubscriptions  int             `json:"total_suscripciones"`
	ActiveSubscriptions int             `json:"suscripciones_activas"`
	TotalRevenue        decimal.Decimal `json:"ingresos_totales"`
	TopCategories       []TopCategory   `json:"top_categorias"`
}

// TopCategory — категория из топа по числу подписок.
type TopCategory struct {
	Category string `json:"Category"`
	Total    int    `json:"total"`
}
