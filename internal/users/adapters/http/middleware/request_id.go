// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"userdirectory/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

const localsRequestContext = "requestContext"

// NewRequestIDMiddleware берет X-Request-ID из запроса или генерирует новый,
// возвращает его в ответе и кладет контекст с ним в Locals.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		ctx.Set(HeaderRequestID, requestID)
		ctx.Locals(localsRequestContext, logger.NewRequestIDContext(ctx.Context(), requestID))

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса с request id, если его положил NewRequestIDMiddleware.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(localsRequestContext).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}
