package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userdirectory/internal/users/adapters/http/middleware"
	"userdirectory/internal/users/domain/entities"
	"userdirectory/pkg/logger"
)

// Тексты ошибок в теле ответа.
const (
	ErrMsgValidationFailed = "validation failed"
	ErrMsgInternal         = "internal server error"
	ErrMsgRouteNotFound    = "route not found"
)

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error   string                    `json:"error"`
	Details []entities.FieldViolation `json:"details,omitempty"`
}

// ErrorHandler переводит ошибки обработчиков в HTTP ответы. Подключается через fiber.Config.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	requestCtx := middleware.RequestContext(ctx)

	var vErr *entities.ValidationError
	if errors.As(err, &vErr) {
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   ErrMsgValidationFailed,
			Details: vErr.Violations,
		})
	}

	var fErr *fiber.Error
	if errors.As(err, &fErr) {
		return ctx.Status(fErr.Code).JSON(ErrorResponse{Error: fErr.Message})
	}

	logger.Log(requestCtx).Error(requestCtx, "unhandled request error",
		zap.String("path", ctx.Path()), zap.Error(err))
	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: ErrMsgInternal})
}
