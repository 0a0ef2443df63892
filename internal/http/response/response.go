// Package response формирует JSON-тела ошибок HTTP-обработчиков.
//
// Ошибки возвращаются как словарь «поле → список сообщений»; ошибки, не
// относящиеся к конкретному полю, лежат под ключом non_field_errors.
package response

import (
	"fmt"

	"github.com/go-playground/validator"
)

// NonFieldErrors ключ для ошибок, не привязанных к полю запроса.
const NonFieldErrors = "non_field_errors"

// FieldErrors тело ответа с ошибками валидации.
type FieldErrors map[string][]string

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	NonFieldErrors []string `json:"non_field_errors" example:"unable to authenticate with provided credentials"`
}

// Error возвращает ошибку, не привязанную к полю.
func Error(msg string) FieldErrors {
	return FieldError(NonFieldErrors, msg)
}

// FieldError возвращает ошибку для одного поля.
func FieldError(field, msg string) FieldErrors {
	return FieldErrors{field: {msg}}
}

// ValidationError переводит ошибки валидатора в человекочитаемые сообщения
// по полям. Имена полей берутся из json-тегов.
func ValidationError(errs validator.ValidationErrors) FieldErrors {
	out := FieldErrors{}
	for _, err := range errs {
		out[err.Field()] = append(out[err.Field()], message(err))
	}
	return out
}

func message(err validator.FieldError) string {
	switch err.ActualTag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return fmt.Sprintf("ensure this field has at least %s characters", err.Param())
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", err.Param())
	default:
		return "invalid value"
	}
}
