// Package config загружает конфигурацию сервисов из окружения с необязательным .env файлом.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"userdirectory/pkg/logger"
)

const (
	msgLoadingConfiguration = "loading configuration"
	msgDotenvLoaded         = "environment file loaded"
	msgConfigurationLoaded  = "configuration loaded successfully"

	errLoadDotenv = "failed to load environment file"
	errReadEnv    = "failed to read environment"
)

// Load читает переменные окружения в структуру T по тегам cleanenv.
// Файлы из envFiles подгружаются через godotenv, если существуют; уже выставленные переменные не перезаписываются.
func Load[T any](ctx context.Context, service string, envFiles ...string) (*T, error) {
	log := logger.Log(ctx).With(zap.String("service", service))
	log.Info(ctx, msgLoadingConfiguration)

	for _, file := range envFiles {
		err := godotenv.Load(file)
		switch {
		case err == nil:
			log.Info(ctx, msgDotenvLoaded, zap.String("path", file))
		case errors.Is(err, fs.ErrNotExist):
		default:
			log.Error(ctx, errLoadDotenv, zap.String("path", file), zap.Error(err))
			return nil, fmt.Errorf("%s %s: %w", errLoadDotenv, file, err)
		}
	}

	var cfg T
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Error(ctx, errReadEnv, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errReadEnv, err)
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}
