// Package config содержит конфигурацию сервиса справочника пользователей.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "userdirectory/pkg/config"
	"userdirectory/pkg/logger"
)

// ServiceName - имя сервиса в логах и конфигурации.
const ServiceName = "userdirectory"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigSummary    = "Effective configuration"
	ErrFailedLoadConfig = "Failed to load configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	HTTP     HTTPConfig     `yaml:"http"`
	GraphQL  GraphQLConfig  `yaml:"graphql"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из окружения и необязательных .env файлов.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envFiles...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigSummary,
		zap.String("store_backend", string(cfg.Store.Backend())),
		zap.String("store_host", cfg.Store.Host),
		zap.String("store_dbname", cfg.Store.DBName),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("graphql_path", cfg.GraphQL.Path),
		zap.Bool("debug", cfg.GraphQL.IsDebug()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
