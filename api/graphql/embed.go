// Package graphql хранит SDL схемы GraphQL API.
package graphql

import _ "embed"

// Schema - SDL схемы, встроенный при сборке.
//
//go:embed schema.graphql
var Schema string
