// Package token реализует HTTP-обработчик выдачи токена аутентификации.
//
// Неизвестный пользователь, неверный пароль и неактивная учётная запись
// дают одинаковый ответ 400, чтобы по ответу нельзя было узнать, существует
// ли email.
package token

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/user-api/internal/http/response"
	"github.com/magabrotheeeer/user-api/internal/lib/sl"
	"github.com/magabrotheeeer/user-api/internal/lib/validation"
	"github.com/magabrotheeeer/user-api/internal/services/auth"
)

// Request учётные данные пользователя.
type Request struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response тело успешного ответа.
type Response struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// Service описывает выдачу токена.
type Service interface {
	IssueToken(ctx context.Context, email, password string) (string, error)
}

// Handler обрабатывает запросы на получение токена.
type Handler struct {
	log      *slog.Logger
	auth     Service
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Получение токена
// @Description Проверяет email и пароль и возвращает токен для заголовка Authorization.
// @Tags User
// @Accept  json
// @Produce  json
// @Param request body Request true "Учётные данные пользователя"
// @Success 200 {object} Response "Токен выдан"
// @Failure 400 {object} response.ErrorResponse "Неверные учётные данные или ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.token"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := h.validate.Struct(req); err != nil {
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) {
			log.Error("validation failed", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request body"))
			return
		}
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(vErrs))
		return
	}

	token, err := h.auth.IssueToken(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Info("authentication rejected")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(auth.ErrInvalidCredentials.Error()))
			return
		}
		log.Error("failed to issue token", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to issue token"))
		return
	}

	log.Info("token issued")
	render.JSON(w, r, Response{Token: token})
}
