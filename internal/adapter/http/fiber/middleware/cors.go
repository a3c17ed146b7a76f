package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	fibercors "github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/seu-repo/clinic-advisor/pkg/config"
)

const defaultCORSMaxAge = 24 * 60 * 60

// NewCORS builds the CORS middleware from config. Empty lists fall back to
// what the API needs. Credentials are never allowed with a wildcard origin.
func NewCORS(cfg config.CORSConfig) fiber.Handler {
	origins := joinOr(cfg.AllowedOrigins, "*")

	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = defaultCORSMaxAge
	}

	return fibercors.New(fibercors.Config{
		AllowOrigins:     origins,
		AllowMethods:     joinOr(cfg.AllowedMethods, "GET,POST,DELETE,OPTIONS"),
		AllowHeaders:     joinOr(cfg.AllowedHeaders, "Origin,Content-Type,Accept,X-Request-ID"),
		ExposeHeaders:    joinOr(cfg.ExposeHeaders, fiber.HeaderXRequestID),
		AllowCredentials: cfg.Credentials && origins != "*",
		MaxAge:           maxAge,
	})
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ",")
}
