// Package create реализует HTTP-обработчик регистрации пользователя.
package create

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
	"github.com/magabrotheeeer/user-api/internal/lib/password"
	"github.com/magabrotheeeer/user-api/internal/lib/sl"
	"github.com/magabrotheeeer/user-api/internal/lib/validation"
	"github.com/magabrotheeeer/user-api/internal/models"
	"github.com/magabrotheeeer/user-api/internal/services/accounts"
	"github.com/magabrotheeeer/user-api/internal/storage"
)

// Request входные данные для регистрации.
type Request struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=5,max=72"`
	Name     string `json:"name" validate:"max=255"`
}

// Response публичные поля созданного пользователя. Пароль сюда не попадает.
type Response struct {
	Email string `json:"email" example:"test@banks.com"`
	Name  string `json:"name" example:"Test name"`
}

// Service описывает создание учётной записи.
type Service interface {
	CreateUser(ctx context.Context, email, password string, extra accounts.Extra) (*models.User, error)
}

// Handler обрабатывает запросы на создание пользователя.
type Handler struct {
	log      *slog.Logger
	accounts Service
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, accounts Service) *Handler {
	return &Handler{
		log:      log,
		accounts: accounts,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт пользователя с email в качестве логина. Пароль не возвращается.
// @Tags User
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные пользователя"
// @Success 201 {object} Response "Пользователь создан"
// @Failure 400 {object} response.FieldErrors "Ошибки валидации по полям"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.create"

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
	log.Debug("request body decoded", slog.String("email", req.Email))

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

	user, err := h.accounts.CreateUser(r.Context(), req.Email, req.Password, accounts.Extra{Name: req.Name})
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrUserExists):
		log.Info("email already registered", slog.String("email", req.Email))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.FieldError("email", "user with this email already exists"))
		return
	case errors.Is(err, accounts.ErrEmailRequired):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.FieldError("email", "this field is required"))
		return
	case errors.Is(err, password.ErrTooLong):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.FieldError("password", "ensure this field has no more than 72 bytes"))
		return
	default:
		log.Error("failed to create user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create user"))
		return
	}

	log.Info("user created", slog.String("uid", user.UUID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Email: user.Email,
		Name:  user.Name,
	})
}
