package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/user-api/internal/models"
	"github.com/magabrotheeeer/user-api/internal/storage"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type CreatorMock struct {
	mock.Mock
}

func (m *CreatorMock) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func TestRun(t *testing.T) {
	admin := &models.User{UUID: "uid-1", Email: "admin@banks.com", IsStaff: true, IsSuperuser: true}

	tests := []struct {
		name      string
		stdin     string
		email     string
		password  string
		passwords []string
		setup     func(s *StoreMock, c *CreatorMock)
		wantErr   error
		wantUser  bool
	}{
		{
			name:     "flags",
			email:    "admin@Banks.com",
			password: "adminpw",
			setup: func(s *StoreMock, c *CreatorMock) {
				s.On("ExistsByEmail", mock.Anything, "admin@banks.com").Return(false, nil).Once()
				c.On("CreateSuperuser", mock.Anything, "admin@Banks.com", "adminpw").Return(admin, nil).Once()
			},
			wantUser: true,
		},
		{
			name:      "interactive",
			stdin:     "admin@banks.com\n",
			passwords: []string{"adminpw", "adminpw"},
			setup: func(s *StoreMock, c *CreatorMock) {
				s.On("ExistsByEmail", mock.Anything, "admin@banks.com").Return(false, nil).Once()
				c.On("CreateSuperuser", mock.Anything, "admin@banks.com", "adminpw").Return(admin, nil).Once()
			},
			wantUser: true,
		},
		{
			name:     "invalid email",
			email:    "admin",
			password: "adminpw",
			setup:    func(_ *StoreMock, _ *CreatorMock) {},
			wantErr:  errInvalidEmail,
		},
		{
			name:     "email taken",
			email:    "admin@banks.com",
			password: "adminpw",
			setup: func(s *StoreMock, _ *CreatorMock) {
				s.On("ExistsByEmail", mock.Anything, "admin@banks.com").Return(true, nil).Once()
			},
			wantErr: errEmailTaken,
		},
		{
			name:     "lost race on insert",
			email:    "admin@banks.com",
			password: "adminpw",
			setup: func(s *StoreMock, c *CreatorMock) {
				s.On("ExistsByEmail", mock.Anything, "admin@banks.com").Return(false, nil).Once()
				c.On("CreateSuperuser", mock.Anything, "admin@banks.com", "adminpw").Return(nil, storage.ErrUserExists).Once()
			},
			wantErr: errEmailTaken,
		},
		{
			name:      "passwords mismatch",
			email:     "admin@banks.com",
			passwords: []string{"adminpw", "other"},
			setup: func(s *StoreMock, _ *CreatorMock) {
				s.On("ExistsByEmail", mock.Anything, "admin@banks.com").Return(false, nil).Once()
			},
			wantErr: errPasswordMismatch,
		},
		{
			name:     "storage failure",
			email:    "admin@banks.com",
			password: "adminpw",
			setup: func(s *StoreMock, _ *CreatorMock) {
				s.On("ExistsByEmail", mock.Anything, "admin@banks.com").Return(false, errors.New("db down")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(StoreMock)
			creator := new(CreatorMock)
			tt.setup(store, creator)
			if tt.passwords != nil {
				stubPasswords(t, tt.passwords...)
			}

			user, err := run(context.Background(), store, creator,
				bufio.NewReader(strings.NewReader(tt.stdin)), &bytes.Buffer{}, tt.email, tt.password)

			switch {
			case tt.wantUser:
				require.NoError(t, err)
				assert.Equal(t, admin, user)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			default:
				assert.Error(t, err)
			}
			store.AssertExpectations(t)
			creator.AssertExpectations(t)
		})
	}
}

func TestRun_ShortPassword(t *testing.T) {
	store := new(StoreMock)
	store.On("ExistsByEmail", mock.Anything, "admin@banks.com").Return(false, nil).Once()

	_, err := run(context.Background(), store, new(CreatorMock),
		bufio.NewReader(strings.NewReader("")), &bytes.Buffer{}, "admin@banks.com", "pw")

	assert.ErrorContains(t, err, "too short")
}
