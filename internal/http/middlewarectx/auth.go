// Package middlewarectx содержит HTTP middleware аутентификации по токену.
//
// TokenAuth читает токен из заголовка Authorization ("Bearer <token>" или
// "Token <token>"), проверяет его и кладёт пользователя в контекст запроса.
// Если проверка не прошла, возвращается 401 Unauthorized.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-api/internal/http/response"
	"github.com/magabrotheeeer/user-api/internal/lib/sl"
	"github.com/magabrotheeeer/user-api/internal/models"
	"github.com/magabrotheeeer/user-api/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ пользователя в контексте.
const User Key = "user"

var authSchemes = []string{"Bearer ", "Token "}

// Authenticator проверяет токен и возвращает его владельца.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// TokenAuth возвращает middleware, пропускающий только запросы с
// действительным токеном активного пользователя.
func TokenAuth(authenticator Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.TokenAuth"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, ok := extractToken(r.Header.Get("Authorization"))
			if !ok {
				log.Info("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication credentials were not provided"))
				return
			}

			user, err := authenticator.Authenticate(r.Context(), tokenStr)
			if err != nil {
				if errors.Is(err, auth.ErrUnauthenticated) {
					log.Info("invalid or expired token", sl.Err(err))
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error(auth.ErrUnauthenticated.Error()))
					return
				}
				log.Error("failed to authenticate", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}

			ctx := context.WithValue(r.Context(), User, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext возвращает пользователя, положенного TokenAuth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok && user != nil
}

func extractToken(header string) (string, bool) {
	for _, scheme := range authSchemes {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			token := strings.TrimSpace(header[len(scheme):])
			return token, token != ""
		}
	}
	return "", false
}
