package accounts_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/user-api/internal/lib/password"
	"github.com/magabrotheeeer/user-api/internal/models"
	"github.com/magabrotheeeer/user-api/internal/services/accounts"
	"github.com/magabrotheeeer/user-api/internal/storage"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) SetPrivileges(ctx context.Context, userUID string, isStaff, isSuperuser bool) error {
	args := m.Called(ctx, userUID, isStaff, isSuperuser)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_CreateUser(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		password   string
		extra      accounts.Extra
		setupMocks func(r *UserRepoMock)
		wantEmail  string
		wantErr    error
	}{
		{
			name:     "create user with email successful",
			email:    "test@gmail.com",
			password: "Testpass123",
			setupMocks: func(r *UserRepoMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "test@gmail.com" &&
						u.PasswordHash != "Testpass123" &&
						u.IsActive && !u.IsStaff && !u.IsSuperuser
				})).Return("uid-1", nil).Once()
			},
			wantEmail: "test@gmail.com",
		},
		{
			name:     "new user email normalized",
			email:    "test@LONDONAPPDEV.COM",
			password: "test123",
			setupMocks: func(r *UserRepoMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "test@londonappdev.com"
				})).Return("uid-2", nil).Once()
			},
			wantEmail: "test@londonappdev.com",
		},
		{
			name:     "extra fields are applied",
			email:    "test@banks.com",
			password: "testpass",
			extra:    accounts.Extra{Name: "Test name", Inactive: true, IsStaff: true},
			setupMocks: func(r *UserRepoMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Name == "Test name" && !u.IsActive && u.IsStaff && !u.IsSuperuser
				})).Return("uid-3", nil).Once()
			},
			wantEmail: "test@banks.com",
		},
		{
			name:       "empty email",
			email:      "",
			password:   "test123",
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    accounts.ErrEmailRequired,
		},
		{
			name:       "blank email",
			email:      "   ",
			password:   "test123",
			setupMocks: func(_ *UserRepoMock) {},
			wantErr:    accounts.ErrEmailRequired,
		},
		{
			name:     "duplicate email",
			email:    "test@banks.com",
			password: "testpass",
			setupMocks: func(r *UserRepoMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).Return("", storage.ErrUserExists).Once()
			},
			wantErr: storage.ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := accounts.NewService(repo, newNoopLogger())

			user, err := svc.CreateUser(context.Background(), tt.email, tt.password, tt.extra)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantEmail, user.Email)
				assert.NotEmpty(t, user.UUID)
				assert.True(t, password.Check(user.PasswordHash, tt.password))
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_CreateUser_EmptyPasswordIsUnusable(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("CreateUser", mock.Anything, mock.Anything).Return("uid", nil).Once()
	svc := accounts.NewService(repo, newNoopLogger())

	user, err := svc.CreateUser(context.Background(), "nopass@banks.com", "", accounts.Extra{})
	require.NoError(t, err)

	assert.False(t, password.IsUsable(user.PasswordHash))
	assert.False(t, password.Check(user.PasswordHash, ""))
}

func TestService_CreateSuperuser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			return u.Email == "test@londonappdev.com" && !u.IsStaff && !u.IsSuperuser
		})).Return("uid-super", nil).Once()
		repo.On("SetPrivileges", mock.Anything, "uid-super", true, true).Return(nil).Once()

		svc := accounts.NewService(repo, newNoopLogger())
		user, err := svc.CreateSuperuser(context.Background(), "test@LONDONAPPDEV.COM", "test123")
		require.NoError(t, err)

		assert.True(t, user.IsStaff)
		assert.True(t, user.IsSuperuser)
		assert.True(t, user.IsPrivileged())
		repo.AssertExpectations(t)
	})

	t.Run("empty email", func(t *testing.T) {
		repo := new(UserRepoMock)
		svc := accounts.NewService(repo, newNoopLogger())

		_, err := svc.CreateSuperuser(context.Background(), "", "test123")
		assert.True(t, errors.Is(err, accounts.ErrEmailRequired))
		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("privilege update fails", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("CreateUser", mock.Anything, mock.Anything).Return("uid-super", nil).Once()
		repo.On("SetPrivileges", mock.Anything, "uid-super", true, true).Return(errors.New("db error")).Once()

		svc := accounts.NewService(repo, newNoopLogger())
		user, err := svc.CreateSuperuser(context.Background(), "admin@banks.com", "test123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db error")
		assert.Nil(t, user)
	})
}
