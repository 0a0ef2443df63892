// Package email содержит правила нормализации адресов электронной почты,
// которые используются как уникальный логин пользователя.
package email

import "strings"

// Normalize приводит доменную часть адреса к нижнему регистру.
//
// Локальная часть (до последнего '@') сохраняется как есть. Пробелы по краям
// обрезаются. Строка без '@' возвращается без изменений, проверка формата
// выполняется валидатором запроса.
func Normalize(address string) string {
	trimmed := strings.TrimSpace(address)
	at := strings.LastIndex(trimmed, "@")
	if at < 0 {
		return address
	}
	return trimmed[:at] + "@" + strings.ToLower(trimmed[at+1:])
}
