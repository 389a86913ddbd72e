// Package db открывает хранилище пользователей, выбранное конфигурацией.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	mongorepo "userdirectory/internal/users/adapters/mongo"
	pgrepo "userdirectory/internal/users/adapters/postgres"
	"userdirectory/internal/users/config"
	"userdirectory/internal/users/ports/repositories"
	"userdirectory/pkg/db/mongo"
	"userdirectory/pkg/db/postgres"
	"userdirectory/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing user store"
	LogDBInitialized     = "user store initialized successfully"
	LogMigrationStarting = "starting database migrations for user store"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply user store migrations"
	ErrDBConnection = "failed to connect to user store"
	ErrGetPath      = "failed to get path"
)

// DB владеет соединением с хранилищем и отдает репозиторий пользователей.
type DB struct {
	backend  config.Backend
	userRepo repositories.UserRepository
	closeFn  func(ctx context.Context) error
	pingFn   func(ctx context.Context) error
}

// New подключается к хранилищу. Для Postgres перед подключением применяются миграции.
// Ошибка здесь фатальна для процесса: сервис не стартует без хранилища.
func New(ctx context.Context, cfg *config.StoreConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("backend", string(cfg.Backend())),
		zap.String("host", cfg.Host),
		zap.String("port", cfg.Port),
		zap.String("database", cfg.DBName))

	var (
		db  *DB
		err error
	)
	switch cfg.Backend() {
	case config.BackendMongo:
		db, err = newMongo(ctx, cfg)
	default:
		db, err = newPostgres(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}

	log.Info(ctx, LogDBInitialized)
	return db, nil
}

func newPostgres(ctx context.Context, cfg *config.StoreConfig) (*DB, error) {
	migrationsPath, err := migrationsSource(cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", ErrDBMigrations, ErrGetPath, err)
	}

	dsn := cfg.GetConnectionURL()

	logger.Log(ctx).Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := postgres.MigrateDSN(ctx, dsn, migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, dsn, cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	return &DB{
		backend:  config.BackendPostgres,
		userRepo: pgrepo.NewRepositoryFactory(database.Pool()).UserRepository(),
		closeFn: func(ctx context.Context) error {
			database.Close(ctx)
			return nil
		},
		pingFn: database.Ping,
	}, nil
}

func newMongo(ctx context.Context, cfg *config.StoreConfig) (*DB, error) {
	database, err := mongo.New(ctx, cfg.GetConnectionURL(), cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	return &DB{
		backend:  config.BackendMongo,
		userRepo: mongorepo.NewUserRepository(database.Collection(mongorepo.CollectionName)),
		closeFn:  database.Close,
		pingFn:   database.Ping,
	}, nil
}

func migrationsSource(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return "file://" + dir, nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return "file://" + absPath, nil
}

// Backend возвращает тип открытого хранилища.
func (db *DB) Backend() config.Backend {
	return db.backend
}

// UserRepository возвращает репозиторий пользователей.
func (db *DB) UserRepository() repositories.UserRepository {
	return db.userRepo
}

// Ping проверяет соединение с хранилищем.
func (db *DB) Ping(ctx context.Context) error {
	return db.pingFn(ctx)
}

// Close закрывает соединение с хранилищем.
func (db *DB) Close(ctx context.Context) error {
	return db.closeFn(ctx)
}
