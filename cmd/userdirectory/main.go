package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userdirectory/internal/users/adapters/cache"
	"userdirectory/internal/users/adapters/graphql"
	httpServer "userdirectory/internal/users/adapters/http"
	"userdirectory/internal/users/app"
	"userdirectory/internal/users/config"
	"userdirectory/internal/users/db"
	cachePorts "userdirectory/internal/users/ports/cache"
	"userdirectory/pkg/logger"
	"userdirectory/pkg/resilience"
	"userdirectory/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "USERDIR_LOGGER_MODE"
	EnvLoggerLevel = "USERDIR_LOGGER_LEVEL"
	EnvFile        = ".env"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize user store"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrInitGraphQL          = "failed to initialize GraphQL endpoint"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "user directory service started"
	LogServiceShutdownDone = "user directory service shutdown complete"
	LogInitDB              = "initializing user store"
	LogInitCache           = "initializing cache"
	LogCacheDisabled       = "record cache disabled"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingCache        = "closing Redis connection"
	LogClosingDB           = "closing user store"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx, EnvFile)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDB)
		store, err := db.New(ctx, &cfg.Store)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		userRepo := store.UserRepository()

		var redisCache cachePorts.Cache
		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitCache, zap.String("address", cfg.Redis.GetAddress()))
			redisCache, err = cache.NewRedisCache(ctx, &cfg.Redis)
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				if closeErr := store.Close(ctx); closeErr != nil {
					log.Error(ctx, LogClosingDB, zap.Error(closeErr))
				}
				exitCode = 1
				return
			}
			breaker := resilience.NewCircuitBreaker("redis-cache", cfg.Redis.BreakerConfig())
			userRepo = cache.NewUserRepository(userRepo, redisCache, breaker)
		} else {
			log.Info(ctx, LogCacheDisabled)
		}

		log.Info(ctx, LogInitServices)
		userService := app.NewUserUseCase(userRepo)

		graphqlHandler, err := graphql.NewHandler(ctx, userService, cfg.GraphQL.IsDebug(), cfg.GraphQL.Path)
		if err != nil {
			log.Error(ctx, ErrInitGraphQL, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitHTTPServer)
		server := httpServer.NewApp(fiber.Config{
			AppName:      config.ServiceName,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(server, userService, graphqlHandler, cfg.GraphQL.Path)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		waitCtx, stopWaiting := context.WithCancel(ctx)
		defer stopWaiting()
		listenErr := listen(ctx, server, cfg.HTTP.GetAddress(), stopWaiting)

		shutdown.Wait(waitCtx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return server.ShutdownWithContext(ctx)
			},
			func(ctx context.Context) error {
				if redisCache == nil {
					return nil
				}
				log.Info(ctx, LogClosingCache)
				return redisCache.Close()
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				return store.Close(ctx)
			},
		)

		select {
		case err := <-listenErr:
			if err != nil {
				exitCode = 1
			}
		default:
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// listen запускает HTTP сервер в фоне. Ошибка запуска попадает в канал и вызывает stop.
func listen(ctx context.Context, server *fiber.App, addr string, stop context.CancelFunc) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := server.Listen(addr); err != nil {
			logger.Log(ctx).Error(ctx, ErrStartHTTPServer, zap.Error(err))
			errCh <- err
			stop()
		}
	}()
	return errCh
}
