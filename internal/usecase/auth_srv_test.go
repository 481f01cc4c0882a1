package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(t *testing.T) (AuthService, *repository.Repository) {
	t.Helper()
	repo := newMemStore().repository()
	return NewAuthService(repo, 24*time.Hour, zap.NewNop()), repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a customer and opens a session", func(t *testing.T) {
		service, repo := newAuthService(t)

		resp, err := service.Register(ctx, &request.RegisterRequest{
			Username: "alice",
			Password: "correct horse",
		})

		require.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, "CUSTOMER", resp.Role)
		assert.NotEmpty(t, resp.Token)

		session, err := repo.Session.FindValidSession(ctx, resp.Token)
		require.NoError(t, err)
		require.NotNil(t, session)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		service, _ := newAuthService(t)

		_, err := service.Register(ctx, &request.RegisterRequest{Username: "alice", Password: "correct horse"})
		require.NoError(t, err)

		_, err = service.Register(ctx, &request.RegisterRequest{Username: "alice", Password: "another pass"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrValidation))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials open a session", func(t *testing.T) {
		service, _ := newAuthService(t)

		_, err := service.Register(ctx, &request.RegisterRequest{Username: "alice", Password: "correct horse"})
		require.NoError(t, err)

		resp, err := service.Login(ctx, &request.LoginRequest{Username: "alice", Password: "correct horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		service, _ := newAuthService(t)

		_, err := service.Register(ctx, &request.RegisterRequest{Username: "alice", Password: "correct horse"})
		require.NoError(t, err)

		_, err = service.Login(ctx, &request.LoginRequest{Username: "alice", Password: "wrong"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrForbidden))
	})

	t.Run("unknown user is rejected the same way", func(t *testing.T) {
		service, _ := newAuthService(t)

		_, err := service.Login(ctx, &request.LoginRequest{Username: "nobody", Password: "whatever"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, repository.ErrForbidden))
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the session", func(t *testing.T) {
		service, repo := newAuthService(t)

		resp, err := service.Register(ctx, &request.RegisterRequest{Username: "alice", Password: "correct horse"})
		require.NoError(t, err)

		require.NoError(t, service.Logout(ctx, resp.Token))

		session, err := repo.Session.FindValidSession(ctx, resp.Token)
		require.NoError(t, err)
		assert.Nil(t, session)
	})
}
