package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"userdirectory/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range []string{"debug", "info", "warn", "warning", "error", "invalid", ""} {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			})
		}
	}
}

func TestLoggerMethods(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	t.Run("With returns a new instance", func(t *testing.T) {
		child := log.With(zap.String("key", "value"), zap.Int("n", 1))
		assert.NotSame(t, log, child)
	})

	t.Run("logging does not panic with or without request id", func(t *testing.T) {
		plain := context.Background()
		withID := logger.NewRequestIDContext(plain, "req-1")

		assert.NotPanics(t, func() {
			for _, ctx := range []context.Context{plain, withID} {
				log.Debug(ctx, "debug")
				log.Info(ctx, "info")
				log.Warn(ctx, "warn")
				log.Error(ctx, "error")
			}
		})
	})
}

func TestFromContext(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		type otherKey struct{}
		ctx := context.WithValue(logger.NewContext(context.Background(), log), otherKey{}, "x")

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, log, got)
	})

	t.Run("missing logger", func(t *testing.T) {
		got, err := logger.FromContext(context.TODO())
		assert.Nil(t, got)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLogFallbackOrder(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	logger.SetGlobalLogger(nil)
	fallback := logger.Log(context.Background())
	require.NotNil(t, fallback)

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Production, "info"))
	global := logger.Log(context.Background())
	assert.NotSame(t, fallback, global)

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "debug"))
	assert.Same(t, global, logger.Log(context.Background()), "second init must keep the existing logger")

	scoped, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	assert.Same(t, scoped, logger.Log(logger.NewContext(context.Background(), scoped)))
}

func TestRequestID(t *testing.T) {
	t.Run("explicit id is kept", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "abc")
		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "abc", id)
	})

	t.Run("empty id is generated", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")
		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Len(t, id, 36)
	})

	t.Run("WithRequestID", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		assert.Same(t, log, log.WithRequestID(context.Background()))
		assert.NotSame(t, log, log.WithRequestID(logger.NewRequestIDContext(context.Background(), "abc")))
	})
}
