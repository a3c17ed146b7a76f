package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

// ErrorHandler maps domain errors to status codes and a JSON
// {error, details} body.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		body := fiber.Map{"error": "요청 처리 중 오류가 발생했습니다"}

		var (
			fe *fiber.Error
			ve *domain.ValidationError
		)
		switch {
		case errors.As(err, &ve):
			code = fiber.StatusBadRequest
			body = fiber.Map{"error": "프로필 입력값이 올바르지 않습니다", "details": ve.Fields}
		case errors.Is(err, domain.ErrUnknownAnalysisKind):
			code = fiber.StatusBadRequest
			body["error"] = "알 수 없는 분석 탭입니다"
		case errors.Is(err, domain.ErrProfileRequired):
			code = fiber.StatusBadRequest
			body["error"] = "프로필이 필요합니다"
		case errors.Is(err, domain.ErrInvalidChatMessage):
			code = fiber.StatusBadRequest
			body["error"] = strings.TrimPrefix(err.Error(), domain.ErrInvalidChatMessage.Error()+": ")
		case errors.Is(err, domain.ErrNarrativeUnavailable):
			code = fiber.StatusBadGateway
			body["error"] = "LLM 응답을 받지 못했습니다. 잠시 후 다시 시도해주십시오."
		case errors.As(err, &fe):
			code = fe.Code
			body["error"] = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("Request failed",
				zap.Error(err),
				zap.String("path", utils.CopyString(c.Path())),
				zap.Int("status", code),
			)
		}

		return c.Status(code).JSON(body)
	}
}
