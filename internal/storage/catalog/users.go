package catalog

import (
	"context"
	"log/slog"

	"github.com/ccastillovega/inventario-portal/internal/lib/password"
	"github.com/ccastillovega/inventario-portal/internal/models"
)

// CreateUser добавляет нового пользователя, хэшируя пароль, и возвращает
// сохранённую запись с назначенным id.
func (s *Store) CreateUser(ctx context.Context, req models.DummyUser) (models.User, error) {
	hash, err := password.GetHash(req.Password)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users := loadCollection[models.User](ctx, s, keyUsers)
	user := models.User{
		ID:           nextID(users, func(u models.User) int { return u.ID }),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		PlanID:       req.PlanID,
	}
	users = append(users, user)
	saveCollection(ctx, s, keyUsers, users)

	s.log.Info("created user", slog.Int("id", user.ID), slog.String("role", user.Role))
	return user, nil
}

// ListUsers перечитывает коллекцию пользователей и возвращает её копию.
func (s *Store) ListUsers(ctx context.Context) []models.User {
	users := loadCollection[models.User](ctx, s, keyUsers)
	result := make([]models.User, len(users))
	copy(result, users)
	return result
}

// UserByID возвращает пользователя по id или nil, если не найден.
func (s *Store) UserByID(ctx context.Context, id int) *models.User {
	for _, user := range loadCollection[models.User](ctx, s, keyUsers) {
		if user.ID == id {
			return &user
		}
	}
	return nil
}

// UserByEmail возвращает пользователя по email или nil, если не найден.
// Уникальность email каталогом не гарантируется, возвращается первый найденный.
func (s *Store) UserByEmail(ctx context.Context, email string) *models.User {
	for _, user := range loadCollection[models.User](ctx, s, keyUsers) {
		if user.Email == email {
			return &user
		}
	}
	return nil
}

// UpdateUser сливает непустые поля запроса в пользователя с данным id.
// Возвращает обновлённую запись или nil, если пользователь не найден.
func (s *Store) UpdateUser(ctx context.Context, id int, req models.DummyUserUpdate) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := loadCollection[models.User](ctx, s, keyUsers)
	for i := range users {
		if users[i].ID != id {
			continue
		}
		if req.Name != nil {
			users[i].Name = *req.Name
		}
		if req.Email != nil {
			users[i].Email = *req.Email
		}
		if req.Role != nil {
			users[i].Role = *req.Role
		}
		if req.PlanID != nil {
			users[i].PlanID = req.PlanID
		}
		saveCollection(ctx, s, keyUsers, users)
		updated := users[i]
		s.log.Info("updated user", slog.Int("id", id))
		return &updated
	}
	return nil
}

// DeleteUser удаляет пользователя по id и сообщает, была ли запись удалена.
func (s *Store) DeleteUser(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := loadCollection[models.User](ctx, s, keyUsers)
	filtered := users[:0:0]
	removed := false
	for _, user := range users {
		if user.ID == id {
			removed = true
			continue
		}
		filtered = append(filtered, user)
	}
	saveCollection(ctx, s, keyUsers, filtered)
	if removed {
		s.log.Info("deleted user", slog.Int("id", id))
	}
	return removed
}

// ResetPassword перечитывает пользователей и перезаписывает хэш пароля.
// Возвращает false, если пользователь не найден.
func (s *Store) ResetPassword(ctx context.Context, id int, newPassword string) (bool, error) {
	hash, err := password.GetHash(newPassword)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users := loadCollection[models.User](ctx, s, keyUsers)
	for i := range users {
		if users[i].ID != id {
			continue
		}
		users[i].PasswordHash = hash
		saveCollection(ctx, s, keyUsers, users)
		s.log.Info("reset password", slog.Int("id", id))
		return true, nil
	}
	return false, nil
}
