package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccastillovega/inventario-portal/internal/lib/password"
	"github.com/ccastillovega/inventario-portal/internal/models"
	"github.com/ccastillovega/inventario-portal/internal/services/auth"
)

type mockUsers struct {
	UserByEmailFunc func(ctx context.Context, email string) *models.User
}

func (m *mockUsers) UserByEmail(ctx context.Context, email string) *models.User {
	return m.UserByEmailFunc(ctx, email)
}

func seededUser(t *testing.T, rawPassword string) *models.User {
	t.Helper()
	hash, err := password.GetHash(rawPassword)
	require.NoError(t, err)
	return &models.User{
		ID:           1,
		Name:         "Administrador",
		Email:        "admin@inventario.cl",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
}

func TestLogin_Success(t *testing.T) {
	stored := seededUser(t, "admin123")
	users := &mockUsers{
		UserByEmailFunc: func(_ context.Context, email string) *models.User {
			require.Equal(t, "admin@inventario.cl", email)
			return stored
		},
	}
	maker := auth.NewTokenMaker("test-secret", time.Hour)
	svc := auth.NewService(users, maker)

	token, user, err := svc.Login(context.Background(), "admin@inventario.cl", "admin123")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleAdmin, user.Role)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@inventario.cl", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	stored := seededUser(t, "admin123")
	users := &mockUsers{
		UserByEmailFunc: func(_ context.Context, _ string) *models.User { return stored },
	}
	svc := auth.NewService(users, auth.NewTokenMaker("test-secret", time.Hour))

	_, _, err := svc.Login(context.Background(), "admin@inventario.cl", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	users := &mockUsers{
		UserByEmailFunc: func(_ context.Context, _ string) *models.User { return nil },
	}
	svc := auth.NewService(users, auth.NewTokenMaker("test-secret", time.Hour))

	_, _, err := svc.Login(context.Background(), "nadie@inventario.cl", "admin123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestParseToken_Expired(t *testing.T) {
	maker := auth.NewTokenMaker("test-secret", -time.Minute)
	token, err := maker.GenerateToken("admin@inventario.cl", models.RoleAdmin)
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_WrongKey(t *testing.T) {
	maker := auth.NewTokenMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken("admin@inventario.cl", models.RoleAdmin)
	require.NoError(t, err)

	other := auth.NewTokenMaker("another-secret", time.Hour)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}
