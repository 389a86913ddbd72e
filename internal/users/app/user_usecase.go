// Package app реализует слой доступа к данным пользователей поверх порта хранилища.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"userdirectory/internal/users/domain/entities"
	"userdirectory/internal/users/ports/api"
	"userdirectory/internal/users/ports/repositories"
	"userdirectory/pkg/logger"
)

const (
	methodFindAll          = "FindAll"
	methodFindByUsername   = "FindByUsername"
	methodFindByEmail      = "FindByEmail"
	methodCreate           = "Create"
	methodResolveFollowers = "ResolveFollowers"
	methodFindProfile      = "FindProfile"

	msgListingUsers        = "listing users"
	msgUserLookup          = "looking up user"
	msgUserAbsent          = "no user matched"
	msgValidationFailed    = "user input failed validation"
	msgUserCreated         = "user created"
	msgDanglingFollower    = "follower reference does not resolve, skipping"
	msgFollowersResolved   = "followers resolved"
	msgErrListingUsers     = "failed to list users"
	msgErrFindingUser      = "failed to find user"
	msgErrCreatingUser     = "failed to create user"
	msgErrResolvingFollowr = "failed to resolve follower"

	errCtxListingUsers       = "listing users"
	errCtxFindingByUsername  = "finding user by username"
	errCtxFindingByEmail     = "finding user by email"
	errCtxValidatingInput    = "validating user input"
	errCtxCreatingUser       = "creating user"
	errCtxResolvingFollowers = "resolving followers"
	errCtxFindingProfile     = "finding profile"
)

// UserUseCase реализует api.UserService. Кроме репозитория состояния нет.
type UserUseCase struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает слой доступа к данным над репозиторием.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserService {
	return &UserUseCase{userRepo: userRepo}
}

// FindAll возвращает всех пользователей без фильтрации и пагинации.
func (u *UserUseCase) FindAll(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodFindAll))
	log.Debug(ctx, msgListingUsers)

	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrListingUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}
	if users == nil {
		users = []*entities.User{}
	}
	return users, nil
}

// FindByUsername возвращает первое точное совпадение или nil.
func (u *UserUseCase) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodFindByUsername), zap.String("username", username))
	return u.lookup(ctx, log, errCtxFindingByUsername, func() (*entities.User, error) {
		return u.userRepo.FindByUsername(ctx, username)
	})
}

// FindByEmail возвращает первое точное совпадение или nil.
func (u *UserUseCase) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodFindByEmail), zap.String("email", email))
	return u.lookup(ctx, log, errCtxFindingByEmail, func() (*entities.User, error) {
		return u.userRepo.FindByEmail(ctx, email)
	})
}

func (u *UserUseCase) lookup(ctx context.Context, log *logger.Logger, errCtx string,
	find func() (*entities.User, error)) (*entities.User, error) {
	log.Debug(ctx, msgUserLookup)

	user, err := find()
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgUserAbsent)
			return nil, nil
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}
	return user, nil
}

// Create проверяет все правила и сохраняет запись. Невалидная запись не сохраняется.
func (u *UserUseCase) Create(ctx context.Context, input *entities.UserInput) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreate))

	if input == nil {
		input = &entities.UserInput{}
	}

	if err := entities.ValidateUserInput(input); err != nil {
		log.Info(ctx, msgValidationFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingInput, err)
	}

	created, err := u.userRepo.Create(ctx, entities.NewUser(input))
	if err != nil {
		log.Error(ctx, msgErrCreatingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}
	if created.Followers == nil {
		created.Followers = []string{}
	}

	log.Info(ctx, msgUserCreated, zap.String("id", created.ID))
	return created, nil
}

// ResolveFollowers ищет каждую ссылку по ID в исходном порядке; висячие ссылки пропускаются молча.
func (u *UserUseCase) ResolveFollowers(ctx context.Context, user *entities.User) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodResolveFollowers))

	resolved := make([]*entities.User, 0)
	if user == nil {
		return resolved, nil
	}

	for _, ref := range user.Followers {
		follower, err := u.userRepo.FindByID(ctx, ref)
		if err != nil {
			if errors.Is(err, entities.ErrUserNotFound) {
				log.Debug(ctx, msgDanglingFollower, zap.String("follower_id", ref))
				continue
			}
			log.Error(ctx, msgErrResolvingFollowr, zap.String("follower_id", ref), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxResolvingFollowers, err)
		}
		resolved = append(resolved, follower)
	}

	log.Debug(ctx, msgFollowersResolved,
		zap.Int("references", len(user.Followers)),
		zap.Int("resolved", len(resolved)))
	return resolved, nil
}

// FindProfile возвращает пользователя с раскрытыми подписчиками или nil.
func (u *UserUseCase) FindProfile(ctx context.Context, username string) (*entities.Profile, error) {
	logger.Log(ctx).Debug(ctx, msgUserLookup, zap.String("method", methodFindProfile))

	user, err := u.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingProfile, err)
	}
	if user == nil {
		return nil, nil
	}

	followers, err := u.ResolveFollowers(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingProfile, err)
	}
	return &entities.Profile{User: user, Followers: followers}, nil
}
