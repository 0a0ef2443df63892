// Package me возвращает профиль пользователя, которому выдан токен.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-api/internal/http/response"
)

// Response публичные поля профиля.
type Response struct {
	Email string `json:"email" example:"test@banks.com"`
	Name  string `json:"name" example:"Test name"`
}

// Handler отдаёт профиль текущего пользователя.
type Handler struct {
	log *slog.Logger
}

// New создаёт Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Tags User
// @Produce  json
// @Security TokenAuth
// @Success 200 {object} Response "Профиль"
// @Failure 401 {object} response.ErrorResponse "Токен отсутствует или недействителен"
// @Router /user/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.me"

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		h.log.Error("user is missing in request context",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication credentials were not provided"))
		return
	}

	render.JSON(w, r, Response{
		Email: user.Email,
		Name:  user.Name,
	})
}
