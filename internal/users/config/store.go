package config

import "strings"

// Backend - тип хранилища, выбранный по схеме строки подключения.
type Backend string

// Поддерживаемые хранилища.
const (
	BackendPostgres Backend = "postgres"
	BackendMongo    Backend = "mongo"
)

// StoreConfig описывает подключение к хранилищу пользователей.
// URL - шаблон с плейсхолдерами <host>, <port>, <user>, <password>, <dbname>.
type StoreConfig struct {
	Host          string `yaml:"host" env:"USERDIR_STORE_HOST" env-default:"127.0.0.1"`
	Port          string `yaml:"port" env:"USERDIR_STORE_PORT" env-default:"5432"`
	User          string `yaml:"user" env:"USERDIR_STORE_USER" env-default:"root"`
	Password      string `yaml:"password" env:"USERDIR_STORE_PASSWORD" env-default:"root"`
	DBName        string `yaml:"dbname" env:"USERDIR_STORE_DBNAME" env-default:"users"`
	URL           string `yaml:"url" env:"USERDIR_STORE_URL" env-default:"postgres://<user>:<password>@<host>:<port>/<dbname>?sslmode=disable"`
	MinConn       int    `yaml:"min_conn" env:"USERDIR_STORE_MIN_CONN" env-default:"1"`
	MaxConn       int    `yaml:"max_conn" env:"USERDIR_STORE_MAX_CONN" env-default:"10"`
	MigrationsDir string `yaml:"migrations_dir" env:"USERDIR_STORE_MIGRATIONS_DIR" env-default:"migrations/users"`
}

// GetConnectionURL подставляет значения в шаблон.
// Заменяется только первое вхождение каждого плейсхолдера, значения вставляются как есть.
func (c *StoreConfig) GetConnectionURL() string {
	url := c.URL
	for _, p := range []struct{ key, value string }{
		{"<host>", c.Host},
		{"<port>", c.Port},
		{"<user>", c.User},
		{"<password>", c.Password},
		{"<dbname>", c.DBName},
	} {
		url = strings.Replace(url, p.key, p.value, 1)
	}
	return url
}

// Backend определяет хранилище по схеме шаблона; все, кроме mongodb, считается Postgres.
func (c *StoreConfig) Backend() Backend {
	if strings.HasPrefix(c.URL, "mongodb://") || strings.HasPrefix(c.URL, "mongodb+srv://") {
		return BackendMongo
	}
	return BackendPostgres
}
