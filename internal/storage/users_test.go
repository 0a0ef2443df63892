package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_Users(t *testing.T) {
	storage := setupTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, storage.CheckDatabaseReady(ctx))

	t.Run("create and read back", func(t *testing.T) {
		uid, err := storage.CreateUser(ctx, testUser("test@banks.com"))
		require.NoError(t, err)
		require.NotEmpty(t, uid)

		byEmail, err := storage.GetUserByEmail(ctx, "test@banks.com")
		require.NoError(t, err)
		assert.Equal(t, uid, byEmail.UUID)
		assert.Equal(t, "Test name", byEmail.Name)
		assert.Equal(t, "hashedpassword", byEmail.PasswordHash)
		assert.True(t, byEmail.IsActive)
		assert.False(t, byEmail.IsStaff)
		assert.False(t, byEmail.IsSuperuser)
		assert.False(t, byEmail.CreatedAt.IsZero())

		byUID, err := storage.GetUser(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, byEmail, byUID)

		exists, err := storage.ExistsByEmail(ctx, "test@banks.com")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := storage.CreateUser(ctx, testUser("dup@banks.com"))
		require.NoError(t, err)

		_, err = storage.CreateUser(ctx, testUser("dup@banks.com"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUserExists))
		assert.Equal(t, 1, countUsers(t, storage, "dup@banks.com"))
	})

	t.Run("concurrent duplicate inserts", func(t *testing.T) {
		const workers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			conflicts int
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := storage.CreateUser(ctx, testUser("race@banks.com"))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case errors.Is(err, ErrUserExists):
					conflicts++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, workers-1, conflicts)
		assert.Equal(t, 1, countUsers(t, storage, "race@banks.com"))
	})

	t.Run("set privileges", func(t *testing.T) {
		uid, err := storage.CreateUser(ctx, testUser("admin@banks.com"))
		require.NoError(t, err)

		require.NoError(t, storage.SetPrivileges(ctx, uid, true, true))

		u, err := storage.GetUser(ctx, uid)
		require.NoError(t, err)
		assert.True(t, u.IsStaff)
		assert.True(t, u.IsSuperuser)
	})

	t.Run("set privileges for unknown user", func(t *testing.T) {
		err := storage.SetPrivileges(ctx, "00000000-0000-0000-0000-000000000000", true, true)
		assert.True(t, errors.Is(err, ErrUserNotFound))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := storage.GetUserByEmail(ctx, "nobody@banks.com")
		assert.True(t, errors.Is(err, ErrUserNotFound))

		exists, err := storage.ExistsByEmail(ctx, "nobody@banks.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("empty email rejected by schema", func(t *testing.T) {
		_, err := storage.CreateUser(ctx, testUser(""))
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := storage.CreateUser(cancelled, testUser("late@banks.com"))
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
