// Package accounts содержит правила создания учётных записей: нормализацию
// email, хеширование пароля и выдачу прав суперпользователя.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/user-api/internal/lib/email"
	"github.com/magabrotheeeer/user-api/internal/lib/password"
	"github.com/magabrotheeeer/user-api/internal/lib/sl"
	"github.com/magabrotheeeer/user-api/internal/metrics"
	"github.com/magabrotheeeer/user-api/internal/models"
)

// MinPasswordLength минимальная длина пароля при регистрации.
const MinPasswordLength = 5

// ErrEmailRequired возвращается при попытке создать пользователя без email.
var ErrEmailRequired = errors.New("users must have an email address")

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	// CreateUser сохраняет пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// SetPrivileges обновляет флаги is_staff и is_superuser.
	SetPrivileges(ctx context.Context, userUID string, isStaff, isSuperuser bool) error
}

// Extra дополнительные поля, задаваемые при создании пользователя.
// Нулевое значение даёт активного пользователя без прав.
type Extra struct {
	Name        string
	Inactive    bool
	IsStaff     bool
	IsSuperuser bool
}

// Service создаёт учётные записи.
type Service struct {
	users UserRepository
	log   *slog.Logger
}

// NewService создаёт новый экземпляр Service.
func NewService(users UserRepository, log *slog.Logger) *Service {
	return &Service{
		users: users,
		log:   log,
	}
}

// CreateUser создаёт и сохраняет пользователя.
//
// Пустой email даёт ErrEmailRequired до обращения к хранилищу. Доменная часть
// email приводится к нижнему регистру, пароль хранится только в виде хеша.
func (s *Service) CreateUser(ctx context.Context, emailAddr, rawPassword string, extra Extra) (*models.User, error) {
	user, err := s.createUser(ctx, emailAddr, rawPassword, extra)
	if err != nil {
		return nil, err
	}
	metrics.UsersCreated.WithLabelValues(metrics.KindRegular).Inc()
	return user, nil
}

// CreateSuperuser создаёт обычного пользователя, затем выставляет ему
// is_staff и is_superuser и сохраняет изменение.
func (s *Service) CreateSuperuser(ctx context.Context, emailAddr, rawPassword string) (*models.User, error) {
	const op = "accounts.CreateSuperuser"

	user, err := s.createUser(ctx, emailAddr, rawPassword, Extra{})
	if err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsSuperuser = true
	if err = s.users.SetPrivileges(ctx, user.UUID, user.IsStaff, user.IsSuperuser); err != nil {
		s.log.Error("failed to grant superuser privileges",
			slog.String("op", op),
			slog.String("uid", user.UUID),
			sl.Err(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.UsersCreated.WithLabelValues(metrics.KindSuperuser).Inc()
	s.log.Info("superuser created", slog.String("op", op), slog.String("uid", user.UUID))
	return user, nil
}

func (s *Service) createUser(ctx context.Context, emailAddr, rawPassword string, extra Extra) (*models.User, error) {
	const op = "accounts.CreateUser"

	if strings.TrimSpace(emailAddr) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailRequired)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Email:        email.Normalize(emailAddr),
		Name:         extra.Name,
		PasswordHash: hashed,
		IsActive:     !extra.Inactive,
		IsStaff:      extra.IsStaff,
		IsSuperuser:  extra.IsSuperuser,
	}

	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.UUID = uid

	s.log.Debug("user created", slog.String("op", op), slog.String("uid", uid))
	return &user, nil
}
