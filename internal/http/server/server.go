// Package server assembles the Fiber application.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/redis/go-redis/v9"

	"sppt/internal/config"
	"sppt/internal/http/handlers"
	"sppt/internal/http/middleware"
	"sppt/internal/infra/logging"
	"sppt/internal/infra/metrics"
)

// Deps are the collaborators the app is built from. Redis, Metrics and
// RateLimitStore may be nil.
type Deps struct {
	Config         config.Config
	Redis          *redis.Client
	Metrics        *metrics.Metrics
	RateLimitStore fiber.Storage
	Options        []handlers.Option
}

// New creates and configures the Fiber app.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:               d.Config.Server.Prefork,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	middleware.Register(app, d.Config, d.RateLimitStore)
	RegisterRoutes(app, d)

	// Every response, including unknown routes, is JSON.
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not Found")
	})

	return app
}

// RegisterRoutes mounts the notice, download and operational endpoints.
func RegisterRoutes(app *fiber.App, d Deps) {
	svc := handlers.NewSPPTService(d.Config, d.Redis, d.Metrics, d.Options...)

	v1 := app.Group("/v1")
	v1.Get("/sppt", svc.HandlePDF)
	v1.Get("/sppt/image", svc.HandleImage)
	v1.Get("/sppt/download/:token", svc.HandleDownload)
	v1.Get("/monitor", monitor.New())

	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	logging.Warn("Request failed", "path", c.Path(), "status", code, "message", msg)

	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": msg,
		},
	})
}
