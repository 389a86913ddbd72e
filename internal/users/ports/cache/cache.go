// Package cache определяет интерфейс кэша.
package cache

import (
	"context"
	"time"
)

// Cache - строковое хранилище ключ-значение с TTL. Промах - пустая строка без ошибки.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Close() error
}
