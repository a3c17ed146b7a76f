package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/domain"
	"github.com/seu-repo/clinic-advisor/internal/ports"
)

type AnalysisHandler struct {
	analysis ports.AnalysisService
	profiles ports.ProfileService
	log      *zap.Logger
}

func NewAnalysisHandler(analysis ports.AnalysisService, profiles ports.ProfileService, log *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysis: analysis,
		profiles: profiles,
		log:      log,
	}
}

type analyzeRequest struct {
	Tab     string          `json:"tab"`
	Profile json.RawMessage `json:"profile"`
}

// Analyze handles POST /api/v1/analyze
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "요청 본문을 해석할 수 없습니다")
	}

	kind, err := domain.ParseAnalysisKind(req.Tab)
	if err != nil {
		return err
	}

	profile, err := decodeProfile(h.profiles, req.Profile)
	if err != nil {
		return err
	}

	env, err := h.analysis.Analyze(c.UserContext(), kind, *profile)
	if err != nil {
		return err
	}

	return c.JSON(env)
}
