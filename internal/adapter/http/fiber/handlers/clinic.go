package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/ports"
)

// ClinicHandler exposes the stored profile.
type ClinicHandler struct {
	profiles ports.ProfileService
	log      *zap.Logger
}

func NewClinicHandler(profiles ports.ProfileService, log *zap.Logger) *ClinicHandler {
	return &ClinicHandler{
		profiles: profiles,
		log:      log,
	}
}

// Get handles GET /api/v1/clinic. A missing profile is {"profile": null}.
func (h *ClinicHandler) Get(c *fiber.Ctx) error {
	profile, err := h.profiles.Current(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"profile": profile})
}

// Save handles POST /api/v1/clinic
func (h *ClinicHandler) Save(c *fiber.Ctx) error {
	profile, err := h.profiles.Save(c.UserContext(), c.Body())
	if err != nil {
		return err
	}

	h.log.Info("Clinic profile saved", zap.String("profile_id", profile.ID))
	return c.JSON(fiber.Map{"success": true, "profile": profile})
}

// Delete handles DELETE /api/v1/clinic
func (h *ClinicHandler) Delete(c *fiber.Ctx) error {
	if err := h.profiles.Delete(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
