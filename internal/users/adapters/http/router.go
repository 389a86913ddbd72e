// Package http содержит компоненты HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"userdirectory/internal/users/adapters/http/middleware"
	"userdirectory/internal/users/adapters/http/users"
	"userdirectory/internal/users/ports/api"
)

// GraphQLEndpoint - обработчики GraphQL эндпоинта.
type GraphQLEndpoint interface {
	Serve(ctx fiber.Ctx) error
	Playground(ctx fiber.Ctx) error
}

// NewApp создает fiber приложение с общим обработчиком ошибок.
func NewApp(cfg fiber.Config) *fiber.App {
	cfg.ErrorHandler = ErrorHandler
	return fiber.New(cfg)
}

// SetupRouter настраивает маршрутизацию. graphql может быть nil.
func SetupRouter(app *fiber.App, userService api.UserService, graphql GraphQLEndpoint, graphqlPath string) {
	usersHandler := users.NewHandler(userService)

	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	userRoutes := app.Group("/users")
	userRoutes.Get("/", usersHandler.ListUsers)
	userRoutes.Get("/:username", usersHandler.GetUser)
	userRoutes.Post("/", usersHandler.CreateUser)

	if graphql != nil {
		app.Post(graphqlPath, graphql.Serve)
		app.Get(graphqlPath, graphql.Playground)
	}

	app.Use(func(ctx fiber.Ctx) error {
		return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: ErrMsgRouteNotFound})
	})
}
