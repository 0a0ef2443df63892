// Package userapi собирает HTTP-приложение учётных записей пользователей.
package userapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Swagger-спецификация регистрируется в init пакета docs.
	_ "github.com/magabrotheeeer/user-api/docs"
	"github.com/magabrotheeeer/user-api/internal/http/handlers/health"
	"github.com/magabrotheeeer/user-api/internal/http/handlers/user/create"
	"github.com/magabrotheeeer/user-api/internal/http/handlers/user/me"
	"github.com/magabrotheeeer/user-api/internal/http/handlers/user/token"
	"github.com/magabrotheeeer/user-api/internal/http/middlewarectx"
)

// AuthService выдаёт и проверяет токены.
type AuthService interface {
	token.Service
	middlewarectx.Authenticator
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, accountsService create.Service, authService AuthService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middleware.StripSlashes,
	)

	r.Get("/health", health.New().ServeHTTP)

	r.Route("/api/user", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/create", create.New(logger, accountsService).ServeHTTP)
		r.Post("/token", token.New(logger, authService).ServeHTTP)

		// Группа с аутентификацией по токену
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.TokenAuth(authService, logger))
			r.Get("/me", me.New(logger).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
