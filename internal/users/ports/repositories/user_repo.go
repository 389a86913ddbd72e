// Package repositories описывает порт хранилища пользователей.
package repositories

import (
	"context"

	"userdirectory/internal/users/domain/entities"
)

// UserRepository - операции хранилища над коллекцией пользователей.
// Поиск без результата возвращает entities.ErrUserNotFound, отказ хранилища - *entities.StoreError.
type UserRepository interface {
	// FindAll возвращает все записи в естественном порядке хранилища.
	FindAll(ctx context.Context) ([]*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	// FindByUsername возвращает первое точное совпадение в порядке сканирования.
	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// Create сохраняет запись; ID назначает хранилище.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
}
