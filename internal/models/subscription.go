package models

// Статусы подписки, известные клиенту.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// Subscription представляет строку истории подписок пользователя
// из GET /subscription/{userId}. Даты приходят строками в формате 2006-01-02,
// FechaFin может быть пустой — подписка без даты окончания.
type Subscription struct {
	SubscriptionID int    `json:"SubscriptionId"`
	ServiceName    string `json:"Servicio"`
	Category       string `json:"Categoria"`
	PlanType       string `json:"TipoPlan"`
	StartDate      string `json:"FechaInicio"`
	EndDate        string `json:"FechaFin"`
	Status         string `json:"Estado"`
}

// AdminSubscription представляет строку GET /admin/suscripciones:
// подписки всех пользователей для экранов фильтрации администратора.
type AdminSubscription struct {
	SubscriptionID int    `json:"SubscriptionId"`
	User           string `json:"Usuario"`
	Email          string `json:"Email"`
	ServiceName    string `json:"Servicio"`
	Category       string `json:"Categoria"`
	Status         string `json:"Estado"`
	DueDate        string `json:"FechaVencimiento"`
}
