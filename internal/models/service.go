package models

import (
	"github.com/shopspring/decimal"
)

// Service представляет сервис каталога, на который можно оформить подписку.
type Service struct {
	ServiceID   int    // Идентификатор сервиса
	Name        string // Название
	Category    string // Категория (Streaming, Música и т.д.)
	Description string // Описание
	Plans       []Plan // Планы сервиса, минимум один
}

// Plan представляет тарифный план сервиса. PlanID — составной идентификатор
// вида "{serviceId}-{planType}", каким его ожидает бэкенд при оплате.
type Plan struct {
	PlanID    string          // Составной идентификатор
	ServiceID int             // Сервис, которому принадлежит план
	PlanType  string          // monthly или annual
	Price     decimal.Decimal // Цена за период
}

// CatalogRow описывает строку ответа GET /admin/servicios: сервис и план
// приходят соединёнными, по строке на каждый план.
type CatalogRow struct {
	ServiceID   int             `json:"ServiceId"`
	Name        string          `json:"Name"`
	Category    string          `json:"Category"`
	Description string          `json:"Description"`
	PlanType    string          `json:"PlanType"`
	Price       decimal.Decimal `json:"Price"`
}

// DummyServiceForm используется администратором для создания и редактирования
// сервиса вместе с его планом.
type DummyServiceForm struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	PlanType    string  `json:"plan_type" validate:"required,oneof=monthly annual"`
}
