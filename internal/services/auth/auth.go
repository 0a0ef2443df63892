// Package auth выдаёт токены аутентификации по email и паролю и проверяет
// их при последующих запросах.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/user-api/internal/lib/email"
	"github.com/magabrotheeeer/user-api/internal/lib/jwt"
	"github.com/magabrotheeeer/user-api/internal/lib/password"
	"github.com/magabrotheeeer/user-api/internal/lib/sl"
	"github.com/magabrotheeeer/user-api/internal/metrics"
	"github.com/magabrotheeeer/user-api/internal/models"
	"github.com/magabrotheeeer/user-api/internal/storage"
)

var (
	// ErrInvalidCredentials одинаково покрывает неизвестного пользователя,
	// неверный пароль и неактивную учётную запись.
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	// ErrUnauthenticated токен недействителен или пользователь больше не активен.
	ErrUnauthenticated = errors.New("invalid or expired token")
)

// UserProvider описывает чтение пользователей из хранилища.
type UserProvider interface {
	// GetUserByEmail возвращает пользователя по нормализованному email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Cache описывает кеш профилей пользователей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service выдаёт и проверяет токены.
type Service struct {
	users    UserProvider
	jwtMaker jwt.Maker
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

// NewService создаёт Service. cache может быть nil, тогда профили читаются
// напрямую из хранилища.
func NewService(users UserProvider, jwtMaker jwt.Maker, cache Cache, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// IssueToken проверяет пароль активного пользователя и выпускает токен.
func (s *Service) IssueToken(ctx context.Context, emailAddr, rawPassword string) (string, error) {
	const op = "auth.IssueToken"

	if emailAddr == "" || rawPassword == "" {
		metrics.AuthFailures.WithLabelValues(metrics.ReasonInvalidCredentials).Inc()
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.users.GetUserByEmail(ctx, email.Normalize(emailAddr))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			password.SimulateCheck(rawPassword)
			metrics.AuthFailures.WithLabelValues(metrics.ReasonInvalidCredentials).Inc()
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !password.Check(user.PasswordHash, rawPassword) || !user.IsActive {
		metrics.AuthFailures.WithLabelValues(metrics.ReasonInvalidCredentials).Inc()
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.UUID, user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	metrics.TokensIssued.Inc()
	return token, nil
}

// Authenticate проверяет токен и возвращает активного пользователя, которому
// он выпущен.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.Authenticate"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		metrics.AuthFailures.WithLabelValues(metrics.ReasonInvalidToken).Inc()
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUnauthenticated, err)
	}

	user, err := s.profile(ctx, claims.UserUID())
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			metrics.AuthFailures.WithLabelValues(metrics.ReasonInvalidToken).Inc()
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !user.IsActive {
		metrics.AuthFailures.WithLabelValues(metrics.ReasonInvalidToken).Inc()
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}
	return user, nil
}

func (s *Service) profile(ctx context.Context, userUID string) (*models.User, error) {
	const op = "auth.profile"
	key := profileKey(userUID)

	if s.cache != nil {
		var cached models.User
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("profile cache read failed", slog.String("op", op), sl.Err(err))
		} else if found {
			return &cached, nil
		}
	}

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err = s.cache.Set(ctx, key, user, s.cacheTTL); err != nil {
			s.log.Warn("profile cache write failed", slog.String("op", op), sl.Err(err))
		}
	}
	return user, nil
}

func profileKey(userUID string) string {
	return "user:profile:" + userUID
}
