// Package models содержит клиентские доменные структуры приложения SubsManager:
// сессию пользователя, сервисы и планы, методы оплаты, подписки и транзакции
// кошелька. Формы запросов (Dummy*) принимают данные до валидации, даты в них
// приходят строками и парсятся вручную.
package models

// Session представляет аутентифицированного пользователя на время работы
// процесса. Создаётся после успешного логина и уничтожается при выходе.
type Session struct {
	UserID   int    `json:"user_id"`       // Идентификатор пользователя на бэкенде
	Role     string `json:"user_rol"`      // Роль: admin или user
	Name     string `json:"user_name"`     // Отображаемое имя
	Email    string `json:"user_email"`    // Электронная почта
	Username string `json:"user_username"` // Уникальное имя пользователя
}

// Роли пользователей, известные клиенту.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DummyLogin используется для приёма данных формы входа.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DummyRegister используется для приёма данных формы регистрации.
type DummyRegister struct {
	Username string `json:"username" validate:"required,alphanum"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// DummyConfirmEmail используется для подтверждения почты кодом из письма.
type DummyConfirmEmail struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,numeric"`
}

// DummyProfile используется для обновления данных собственного профиля.
type DummyProfile struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
}
