// Package models содержит доменные структуры бэк-офиса: пользователей,
// группы и виды спорта, а также вспомогательные типы для приёма данных
// из JSON-запросов.
package models

import "time"

// User представляет пользователя административной части системы.
// Канонические формы username и email хранятся отдельно и используются
// для регистронезависимых проверок уникальности.
type User struct {
	UID               string     `json:"uid"`
	Username          string     `json:"username"`
	UsernameCanonical string     `json:"-"`
	Email             string     `json:"email"`
	EmailCanonical    string     `json:"-"`
	PasswordHash      string     `json:"-"`
	PlainPassword     string     `json:"-"` // Транзитное поле, очищается после хеширования
	DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
	Firstname         string     `json:"firstname,omitempty"`
	Lastname          string     `json:"lastname,omitempty"`
	Website           string     `json:"website,omitempty"`
	Biography         string     `json:"biography,omitempty"`
	Gender            string     `json:"gender"`
	Locale            string     `json:"locale,omitempty"`
	Timezone          string     `json:"timezone,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Roles             []string   `json:"roles"`
	Groups            []Group    `json:"groups"`
	Enabled           bool       `json:"enabled"`
	Locked            bool       `json:"locked"`
	CreatedAt         time.Time  `json:"created_at"`
}

// HasRole сообщает, содержится ли роль в наборе ролей пользователя.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsPersisted сообщает, сохранён ли пользователь в хранилище.
func (u *User) IsPersisted() bool {
	return u.UID != ""
}

// Group представляет именованную группу пользователей. Имя группы уникально
// и связывает раздел админки с подмножеством пользователей.
type Group struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DummyUser используется для приёма данных пользователя из JSON-запроса,
// прежде чем конвертировать их в User.
type DummyUser struct {
	Username      string `json:"username" validate:"required,alphanum"`
	Email         string `json:"email" validate:"required,email"`
	PlainPassword string `json:"plain_password" validate:"required"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Firstname     string `json:"firstname,omitempty"`
	Lastname      string `json:"lastname,omitempty"`
	Website       string `json:"website,omitempty"`
	Biography     string `json:"biography,omitempty"`
	Gender        string `json:"gender" validate:"required,oneof=male female other"`
	Locale        string `json:"locale,omitempty"`
	Timezone      string `json:"timezone,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// DummyUserUpdate используется для приёма изменений пользователя.
// Все поля опциональны, обновляются только переданные.
type DummyUserUpdate struct {
	Username      *string  `json:"username,omitempty"`
	Email         *string  `json:"email,omitempty" validate:"omitempty,email"`
	PlainPassword *string  `json:"plain_password,omitempty"`
	Roles         []string `json:"roles,omitempty"`
	Enabled       *bool    `json:"enabled,omitempty"`
	Locked        *bool    `json:"locked,omitempty"`
}
