// Package models содержит доменную модель пользователя системы.
// Пользователь идентифицируется по нормализованному email вместо username.
package models

import "time"

// User представляет учётную запись пользователя.
//
// Хеш пароля никогда не сериализуется в JSON, поэтому структуру можно
// безопасно класть в кеш.
type User struct {
	UUID         string    `json:"uid"`          // Уникальный идентификатор пользователя
	Email        string    `json:"email"`        // Нормализованный email, он же логин
	Name         string    `json:"name"`         // Отображаемое имя, необязательное
	PasswordHash string    `json:"-"`            // Хеш пароля
	IsActive     bool      `json:"is_active"`    // Разрешён ли вход
	IsStaff      bool      `json:"is_staff"`     // Доступ к администрированию
	IsSuperuser  bool      `json:"is_superuser"` // Полные права
	CreatedAt    time.Time `json:"created_at"`   // Дата создания записи
}

// IsPrivileged сообщает, является ли пользователь суперпользователем.
func (u *User) IsPrivileged() bool {
	return u.IsStaff && u.IsSuperuser
}
