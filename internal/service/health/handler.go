package health

import (
	"github.com/gofiber/fiber/v2"
)

var (
	livenessPaths  = []string{"/health", "/healthz", "/live", "/livez"}
	readinessPaths = []string{"/ready", "/readyz"}
)

// Register mounts the probes on r. Readiness answers 503 while any check is
// unhealthy so load balancers stop routing to the instance.
func Register(r fiber.Router, s *Service) {
	live := func(c *fiber.Ctx) error {
		return c.JSON(s.Health(c.UserContext()))
	}
	ready := func(c *fiber.Ctx) error {
		resp := s.Ready(c.UserContext())
		if !resp.Ready {
			c.Status(fiber.StatusServiceUnavailable)
		}
		return c.JSON(resp)
	}

	for _, p := range livenessPaths {
		r.Get(p, live)
	}
	for _, p := range readinessPaths {
		r.Get(p, ready)
	}
}
