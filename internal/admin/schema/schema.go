// Package schema описывает декларативные структуры полей админки.
//
// Вместо императивного построения формы конфигуратор возвращает
// упорядоченные списки дескрипторов; внешний слой отрисовки админки
// потребляет их как данные.
package schema

// Field описывает одно поле формы, списка, фильтра или карточки просмотра.
// Порядок полей в группе значим.
type Field struct {
	Name       string   `json:"name"`
	Type       string   `json:"type,omitempty"`
	Label      string   `json:"label,omitempty"`
	Required   bool     `json:"required,omitempty"`
	Editable   bool     `json:"editable,omitempty"`
	Multiple   bool     `json:"multiple,omitempty"`
	Expanded   bool     `json:"expanded,omitempty"`
	Identifier bool     `json:"identifier,omitempty"`
	Template   string   `json:"template,omitempty"`
	Choices    []string `json:"choices,omitempty"`
}

// Group представляет именованную упорядоченную группу полей.
type Group struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Form — полная схема формы: группа валидации и группы полей.
type Form struct {
	ValidationGroup string  `json:"validation_group"`
	Groups          []Group `json:"groups"`
}

// Группы валидации формы пользователя.
const (
	ValidationGroupRegistration = "Registration"
	ValidationGroupProfile      = "Profile"
)

// List — схема табличного списка.
type List struct {
	Columns []Field `json:"columns"`
}

// Filter — схема доступных фильтров списка.
type Filter struct {
	Fields []Field `json:"fields"`
}

// Show — схема карточки просмотра, разбитая на секции.
type Show struct {
	Sections []Group `json:"sections"`
}
