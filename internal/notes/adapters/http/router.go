// Package http содержит компоненты для HTTP сервера.
package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"

	"smartnotes/internal/notes/adapters/http/middleware"
	"smartnotes/internal/notes/adapters/http/notes"
	"smartnotes/internal/notes/ports/api"
	"smartnotes/internal/notes/ports/repositories"
	"smartnotes/pkg/logger"
)

// Константы ответов служебных маршрутов.
const (
	MsgRunning        = "Backend is running!"
	ErrMsgNotFound    = "Route not found"
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	healthTimeout = 2 * time.Second
)

// RouterConfig содержит настройки маршрутизации.
type RouterConfig struct {
	CORSOrigins []string
}

// NewApp создает fiber приложение с таймаутами и лимитом тела запроса.
func NewApp(readTimeout, writeTimeout time.Duration, bodyLimit int) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "smartnotes",
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		BodyLimit:    bodyLimit,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, cfg RouterConfig, noteService api.NoteUseCase, health repositories.HealthChecker) {
	notesHandler := notes.NewHandler(noteService)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowHeaders:  []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, logger.HeaderRequestID},
		ExposeHeaders: []string{logger.HeaderRequestID},
	}))

	app.Get("/", func(ctx fiber.Ctx) error {
		return ctx.SendString(MsgRunning)
	})
	app.Get("/healthz", healthHandler(health))

	apiRoutes := app.Group("/api")
	apiRoutes.Post("/summarize", notesHandler.Summarize)
	apiRoutes.Post("/save", notesHandler.Save)
	apiRoutes.Get("/history", notesHandler.History)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgNotFound,
		})
	})
}

func healthHandler(health repositories.HealthChecker) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		reqCtx := middleware.RequestContext(ctx)
		pingCtx, cancel := context.WithTimeout(reqCtx, healthTimeout)
		defer cancel()

		if err := health.Ping(pingCtx); err != nil {
			logger.Log(reqCtx).Warn(reqCtx, "store health check failed", zap.Error(err))
			if sendErr := ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": StatusUnavailable}); sendErr != nil {
				return fmt.Errorf("failed to send health response: %w", sendErr)
			}
			return nil
		}

		return ctx.JSON(fiber.Map{"status": StatusOK})
	}
}
