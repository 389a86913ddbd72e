// Package postgres содержит реализацию репозитория пользователей поверх PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"userdirectory/internal/users/domain/entities"
	"userdirectory/internal/users/ports/repositories"
	"userdirectory/pkg/logger"
)

// PgxPoolInterface - подмножество *pgxpool.Pool, нужное репозиторию. Его же реализует pgxmock.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

const (
	opFindAll        = "find all users"
	opFindByID       = "find user by id"
	opFindByUsername = "find user by username"
	opFindByEmail    = "find user by email"
	opCreate         = "create user"

	selectColumns = `SELECT id, first_name, last_name, username, email, followers FROM users`

	queryFindAll        = selectColumns + ` ORDER BY seq`
	queryFindByID       = selectColumns + ` WHERE id = $1`
	queryFindByUsername = selectColumns + ` WHERE username = $1 ORDER BY seq LIMIT 1`
	queryFindByEmail    = selectColumns + ` WHERE email = $1 ORDER BY seq LIMIT 1`
	queryCreate         = `INSERT INTO users (first_name, last_name, username, email, followers)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, first_name, last_name, username, email, followers`
)

// UserRepository реализует repositories.UserRepository для Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает репозиторий пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// FindAll возвращает все записи в порядке вставки.
func (r *UserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindAll"))

	rows, err := r.pool.Query(ctx, queryFindAll)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, entities.NewStoreError(opFindAll, err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error(ctx, "error scanning user row", zap.Error(err))
			return nil, entities.NewStoreError(opFindAll, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating user rows", zap.Error(err))
		return nil, entities.NewStoreError(opFindAll, err)
	}

	log.Debug(ctx, "users listed", zap.Int("count", len(users)))
	return users, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, "FindByID", opFindByID, queryFindByID, zap.String("id", id), id)
}

// FindByUsername возвращает первую по порядку вставки запись с таким username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, "FindByUsername", opFindByUsername, queryFindByUsername, zap.String("username", username), username)
}

// FindByEmail возвращает первую по порядку вставки запись с таким email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "FindByEmail", opFindByEmail, queryFindByEmail, zap.String("email", email), email)
}

func (r *UserRepository) findOne(ctx context.Context, method, op, query string, key zap.Field, arg string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	user, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", key)
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user", key, zap.Error(err))
		return nil, entities.NewStoreError(op, err)
	}

	return user, nil
}

// Create сохраняет запись; ID назначает база.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	followers := user.Followers
	if followers == nil {
		followers = []string{}
	}

	created, err := scanUser(r.pool.QueryRow(ctx, queryCreate,
		user.FirstName,
		user.LastName,
		user.Username,
		user.Email,
		followers,
	))
	if err != nil {
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, entities.NewStoreError(opCreate, err)
	}

	log.Info(ctx, "user created", zap.String("id", created.ID))
	return created, nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	if err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Username,
		&user.Email,
		&user.Followers,
	); err != nil {
		return nil, err
	}
	if user.Followers == nil {
		user.Followers = []string{}
	}
	return &user, nil
}
