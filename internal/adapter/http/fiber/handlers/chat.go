package handlers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/domain"
	"github.com/seu-repo/clinic-advisor/internal/ports"
)

type ChatHandler struct {
	chat     ports.ChatService
	profiles ports.ProfileService
	log      *zap.Logger
}

func NewChatHandler(chat ports.ChatService, profiles ports.ProfileService, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chat:     chat,
		profiles: profiles,
		log:      log,
	}
}

type chatRequest struct {
	Message string               `json:"message"`
	History []domain.ChatMessage `json:"history"`
	Profile json.RawMessage      `json:"profile"`
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "요청 본문을 해석할 수 없습니다")
	}

	// A blank message is reported before any profile problem.
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%w: 메시지를 입력해주십시오", domain.ErrInvalidChatMessage)
	}

	profile, err := decodeProfile(h.profiles, req.Profile)
	if err != nil {
		return err
	}

	reply, err := h.chat.Chat(c.UserContext(), domain.ChatRequest{
		Message: req.Message,
		History: req.History,
		Profile: profile,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"reply": reply})
}
