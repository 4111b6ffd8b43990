package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"cpusched/config"
	"cpusched/internal/metrics"
)

// NewApp wires the scheduler routes under /api/v1 and, when enabled, /metrics.
func NewApp(cfg *config.SchedulerConfig, collector *metrics.Collector) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler := NewSchedulerHandlerImpl(cfg, collector)

	api := app.Group("/api")
	v1 := api.Group("/v1")
	{
		v1.Get("/health", func(ctx *fiber.Ctx) error {
			return ctx.JSON(fiber.Map{"status": "ok"})
		})
		v1.Post("/fcfs", handler.FirstComeFirstServe)
		v1.Post("/rr", handler.RoundRobin)
		v1.Post("/sjf", handler.ShortestJobFirst)
		v1.Post("/all", handler.AllAlgorithms)
		v1.Post("/upload", handler.Upload)
	}

	if cfg.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(collector.Handler()))
	}
	return app
}
