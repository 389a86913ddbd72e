// Package api описывает слой доступа к данным, общий для REST и GraphQL.
package api

import (
	"context"

	"userdirectory/internal/users/domain/entities"
)

// UserService - единственная точка входа фронтендов в данные пользователей.
// Отсутствие записи - (nil, nil), а не ошибка.
type UserService interface {
	FindAll(ctx context.Context) ([]*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// Create валидирует ввод и сохраняет запись. Ошибка валидации - *entities.ValidationError.
	Create(ctx context.Context, input *entities.UserInput) (*entities.User, error)

	// ResolveFollowers раскрывает ссылки user.Followers в записи, пропуская висячие.
	ResolveFollowers(ctx context.Context, user *entities.User) ([]*entities.User, error)

	// FindProfile - FindByUsername с последующим ResolveFollowers.
	FindProfile(ctx context.Context, username string) (*entities.Profile, error)
}
