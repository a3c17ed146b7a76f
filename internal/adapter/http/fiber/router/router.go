// Package router assembles the fiber application: middleware, API routes,
// health probes and the Prometheus endpoint.
package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/clinic-advisor/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/clinic-advisor/internal/ports"
	"github.com/seu-repo/clinic-advisor/internal/service/health"
	"github.com/seu-repo/clinic-advisor/pkg/config"
)

// Deps carries everything the routes need.
type Deps struct {
	Config   *config.Config
	Analysis ports.AnalysisService
	Chat     ports.ChatService
	Profiles ports.ProfileService
	Health   *health.Service
	Log      *zap.Logger
}

func New(d Deps) *fiber.App {
	cfg := d.Config
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ServerHeader:          cfg.App.Name,
		DisableStartupMessage: true,
		BodyLimit:             cfg.HTTP.BodyLimit,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(d.Log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(d.Log))
	app.Use(middleware.NewCORS(cfg.CORS))

	if d.Health != nil {
		health.Register(app, d.Health)
	}

	if cfg.Prometheus.Enabled {
		path := cfg.Prometheus.Path
		if path == "" {
			path = "/metrics"
		}
		metrics := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(path, func(c *fiber.Ctx) error {
			metrics(c.Context())
			return nil
		})
	}

	analysisHandler := handlers.NewAnalysisHandler(d.Analysis, d.Profiles, d.Log)
	chatHandler := handlers.NewChatHandler(d.Chat, d.Profiles, d.Log)
	clinicHandler := handlers.NewClinicHandler(d.Profiles, d.Log)

	api := app.Group("/api/v1")
	api.Post("/analyze", analysisHandler.Analyze)
	api.Post("/chat", chatHandler.Chat)
	api.Get("/clinic", clinicHandler.Get)
	api.Post("/clinic", clinicHandler.Save)
	api.Delete("/clinic", clinicHandler.Delete)

	return app
}
