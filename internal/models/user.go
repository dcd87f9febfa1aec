package models

// Статусы учётной записи, которыми управляет администратор.
// Удаление пользователя — мягкое: AccountStatus переводится в deleted.
const (
	AccountActive      = "active"
	AccountDeactivated = "deactivated"
	AccountDeleted     = "deleted"
)

// AdminUser представляет пользователя в списке администратора.
type AdminUser struct {
	UserID        int    `json:"UserId"`
	Name          string `json:"Name"`
	Email         string `json:"Email"`
	Username      string `json:"Username"`
	Role          string `json:"Rol"`
	AccountStatus string `json:"AccountStatus"`
}

// DummyUserEdit используется администратором для редактирования пользователя.
// NewPassword отправляется только если задан.
type DummyUserEdit struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Role          string `json:"rol" validate:"required,oneof=admin user"`
	AccountStatus string `json:"accountStatus" validate:"required,oneof=active deactivated deleted"`
	Username      string `json:"user" validate:"required,alphanum"`
	NewPassword   string `json:"newPassword,omitempty" validate:"omitempty,min=8"`
}
