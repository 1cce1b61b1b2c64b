package models

// Константы ролей, используемые при проверках доступа.
const (
	// RoleUser — базовая роль аутентифицированного пользователя,
	// не попадает в плоский список выбираемых ролей.
	RoleUser = "ROLE_USER"
	// RoleAdmin — роль администратора, требуется для создания видов спорта
	// и доступа к админским эндпоинтам.
	RoleAdmin = "ROLE_ADMIN"
	// RoleSuperAdmin — наивысшая роль; для таких пользователей секция
	// Management в форме не отображается.
	RoleSuperAdmin = "ROLE_SUPER_ADMIN"
	// RoleAllowedToSwitch — право имперсонации, включает колонку
	// impersonating в списке пользователей.
	RoleAllowedToSwitch = "ROLE_ALLOWED_TO_SWITCH"
)

// RoleGroup описывает один элемент иерархии ролей: роль верхнего уровня
// и список ролей, которые она включает. Порядок элементов значим.
type RoleGroup struct {
	Role     string   `yaml:"role" json:"role"`
	Includes []string `yaml:"includes" json:"includes"`
}
