package config

import "strings"

// GraphQLConfig настраивает GraphQL эндпоинт.
type GraphQLConfig struct {
	Path  string `yaml:"path" env:"USERDIR_GRAPHQL_PATH" env-default:"/graphql"`
	Debug string `yaml:"debug" env:"USERDIR_DEBUG" env-default:"false"`
}

// IsDebug сообщает, включен ли GraphiQL. Значение ложно, если содержит "0" или "false" без учета регистра.
func (c *GraphQLConfig) IsDebug() bool {
	v := strings.ToLower(c.Debug)
	return !strings.Contains(v, "0") && !strings.Contains(v, "false")
}
