// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"smartnotes/pkg/logger"
)

// UserContextKey - ключ Locals, под которым хранится контекст запроса.
const UserContextKey = "userContext"

// NewRequestIDMiddleware присваивает запросу идентификатор.
// Идентификатор берется из X-Request-ID или генерируется и возвращается в ответе.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(logger.HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		ctx.Set(logger.HeaderRequestID, requestID)
		ctx.Locals(UserContextKey, logger.NewRequestIDContext(ctx.Context(), requestID))

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса с request_id.
func RequestContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(UserContextKey).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}
