package cache

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"userdirectory/internal/users/domain/entities"
	"userdirectory/internal/users/ports/cache"
	"userdirectory/internal/users/ports/repositories"
	"userdirectory/pkg/logger"
	"userdirectory/pkg/resilience"
)

const userKeyPrefix = "user:id:"

// cachedUser - JSON-представление записи в кэше.
type cachedUser struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Followers []string `json:"followers"`
}

// UserRepository кэширует FindByID поверх другого репозитория.
// Записи не меняются после создания, поэтому инвалидация не нужна. Отсутствие записи не кэшируется.
// Ошибки кэша не прерывают запрос: чтение уходит в хранилище.
// Пока breaker разомкнут, кэш не опрашивается вовсе.
type UserRepository struct {
	next    repositories.UserRepository
	cache   cache.Cache
	breaker *resilience.CircuitBreaker
}

// NewUserRepository оборачивает репозиторий next кэшем c.
func NewUserRepository(next repositories.UserRepository, c cache.Cache, breaker *resilience.CircuitBreaker) repositories.UserRepository {
	return &UserRepository{next: next, cache: c, breaker: breaker}
}

func userKey(id string) string {
	return userKeyPrefix + id
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	return r.next.FindAll(ctx)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.next.FindByUsername(ctx, username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.next.FindByEmail(ctx, email)
}

// FindByID сначала читает кэш, при промахе идет в хранилище и прогревает кэш.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user_cache"), zap.String("id", id))

	var raw string
	err := r.breaker.Execute(ctx, func() error {
		var getErr error
		raw, getErr = r.cache.Get(ctx, userKey(id))
		return getErr
	})
	if err == nil && raw != "" {
		var cu cachedUser
		if err := json.Unmarshal([]byte(raw), &cu); err == nil {
			log.Debug(ctx, "user cache hit")
			return cu.toEntity(), nil
		}
		log.Warn(ctx, "discarding malformed cache entry")
	}

	user, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.store(ctx, log, user)
	return user, nil
}

// Create сохраняет запись и сразу кладет ее в кэш.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	created, err := r.next.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	r.store(ctx, logger.Log(ctx).With(zap.String("repository", "user_cache"), zap.String("id", created.ID)), created)
	return created, nil
}

func (r *UserRepository) store(ctx context.Context, log *logger.Logger, user *entities.User) {
	raw, err := json.Marshal(fromEntity(user))
	if err != nil {
		log.Warn(ctx, "failed to encode user for cache", zap.Error(err))
		return
	}
	err = r.breaker.Execute(ctx, func() error {
		return r.cache.Set(ctx, userKey(user.ID), string(raw), 0)
	})
	if err != nil {
		log.Debug(ctx, "user not cached", zap.Error(err))
	}
}

func fromEntity(u *entities.User) cachedUser {
	return cachedUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Followers: u.Followers,
	}
}

func (c *cachedUser) toEntity() *entities.User {
	followers := c.Followers
	if followers == nil {
		followers = []string{}
	}
	return &entities.User{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Username:  c.Username,
		Email:     c.Email,
		Followers: followers,
	}
}
