package models

// Sport представляет вид спорта в каталоге.
// Поле Icon хранит имя файла иконки, может быть пустым.
type Sport struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	Icon     string `json:"icon,omitempty"`
}

// DummySport используется для приёма данных нового вида спорта из JSON-запроса.
// IsActive приходит строкой "true"/"false", как того требует контракт API.
type DummySport struct {
	Name     string `json:"name" validate:"required,excludes=/"`
	IsActive string `json:"isActive,omitempty" validate:"omitempty,oneof=true false"`
	Icon     string `json:"icon,omitempty"`
}

// DummySportUpdate используется для частичного обновления вида спорта.
// Обновляются только переданные поля.
type DummySportUpdate struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,excludes=/"`
	IsActive *string `json:"isActive,omitempty" validate:"omitempty,oneof=true false"`
	Icon     *string `json:"icon,omitempty"`
}
