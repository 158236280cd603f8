package auth

import (
	"context"
	"errors"

	"github.com/ccastillovega/inventario-portal/internal/lib/password"
	"github.com/ccastillovega/inventario-portal/internal/models"
)

// ErrInvalidCredentials возвращается при неверном email или пароле.
// Причина не уточняется, чтобы не раскрывать существование учётной записи.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserProvider описывает выборку пользователей из каталога.
type UserProvider interface {
	// UserByEmail возвращает пользователя по email или nil.
	UserByEmail(ctx context.Context, email string) *models.User
}

// Service отвечает за вход пользователей и выпуск токенов.
type Service struct {
	users    UserProvider
	jwtMaker TokenMaker
}

// NewService создает новый экземпляр Service.
func NewService(users UserProvider, jwtMaker TokenMaker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Login проверяет пароль пользователя и генерирует JWT с его ролью.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (token string, user *models.User, err error) {
	user = s.users.UserByEmail(ctx, email)
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
