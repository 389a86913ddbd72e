// Package users содержит HTTP-обработчики ресурса /users.
package users

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userdirectory/internal/users/adapters/http/middleware"
	"userdirectory/internal/users/domain/entities"
	"userdirectory/internal/users/ports/api"
	"userdirectory/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerListUsers  = "handling list users request"
	LogHandlerGetUser    = "handling get user request"
	LogHandlerCreateUser = "handling create user request"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidUsername    = "invalid username"
)

// Handler обработчик HTTP-запросов к справочнику пользователей.
type Handler struct {
	userService api.UserService
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(userService api.UserService) *Handler {
	return &Handler{
		userService: userService,
	}
}

// ListUsers возвращает всех пользователей.
func (h *Handler) ListUsers(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListUsers)

	users, err := h.userService.FindAll(requestCtx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	return ctx.JSON(toUserResponses(users))
}

// GetUser возвращает пользователя по username с раскрытыми подписчиками.
// Если пользователя нет, тело ответа - null при статусе 200.
// Сегмент пути декодируется уже после маршрутизации: %2F остается частью username.
func (h *Handler) GetUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	username, err := url.PathUnescape(ctx.Params("username"))
	if err != nil {
		logger.Log(requestCtx).Info(requestCtx, ErrMsgInvalidUsername, zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidUsername)
	}
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetUser, zap.String("username", username))

	profile, err := h.userService.FindProfile(requestCtx, username)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	return ctx.JSON(toProfileResponse(profile))
}

// CreateUser проверяет и сохраняет нового пользователя.
func (h *Handler) CreateUser(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateUser"))
	log.Debug(requestCtx, LogHandlerCreateUser)

	var req entities.UserInput
	if err := ctx.Bind().Body(&req); err != nil {
		log.Info(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	user, err := h.userService.Create(requestCtx, &req)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}
