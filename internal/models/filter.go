package models

// UserFilter задаёт критерии выборки пользователей для списка админки.
// Пустые поля не участвуют в фильтрации. Поле Group содержит имя группы;
// неявное значение из метки раздела может быть переопределено явным фильтром.
type UserFilter struct {
	UID      string
	Username string
	Email    string
	Locked   *bool
	Group    string
}
