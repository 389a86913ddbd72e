package config

import (
	"net"
	"strconv"
	"time"

	"userdirectory/pkg/resilience"
)

// RedisConfig представляет конфигурацию кэша записей в Redis.
type RedisConfig struct {
	Enabled        bool          `yaml:"enabled" env:"USERDIR_REDIS_ENABLED" env-default:"false"`
	Host           string        `yaml:"host" env:"USERDIR_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"USERDIR_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"USERDIR_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"USERDIR_REDIS_DB" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"USERDIR_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"USERDIR_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"USERDIR_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize       int           `yaml:"pool_size" env:"USERDIR_REDIS_POOL_SIZE" env-default:"10"`
	DefaultTTL     time.Duration `yaml:"default_ttl" env:"USERDIR_REDIS_DEFAULT_TTL" env-default:"15m"`

	// После BreakerThreshold ошибок подряд кэш обходится в течение BreakerCooldown.
	BreakerThreshold int           `yaml:"breaker_threshold" env:"USERDIR_REDIS_BREAKER_THRESHOLD" env-default:"5"`
	BreakerCooldown  time.Duration `yaml:"breaker_cooldown" env:"USERDIR_REDIS_BREAKER_COOLDOWN" env-default:"10s"`
}

// GetAddress возвращает адрес Redis в формате host:port.
func (c *RedisConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// BreakerConfig возвращает настройки Circuit Breaker для обращений к кэшу.
func (c *RedisConfig) BreakerConfig() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		ErrorThreshold:   c.BreakerThreshold,
		Cooldown:         c.BreakerCooldown,
		SuccessThreshold: 1,
	}
}
