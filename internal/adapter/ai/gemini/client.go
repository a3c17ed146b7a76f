// Package gemini generates narrative text through the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

const DefaultModel = "gemini-2.0-flash"

// contentGenerator is the part of *genai.Models the client needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Client struct {
	models      contentGenerator
	model       string
	temperature float32
	maxTokens   int32
	log         *zap.Logger
}

func NewClient(ctx context.Context, apiKey, model string, temperature float64, maxTokens int, log *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key not configured")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return newClient(gc.Models, model, temperature, maxTokens, log), nil
}

func newClient(models contentGenerator, model string, temperature float64, maxTokens int, log *zap.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = 800
	}
	return &Client{
		models:      models,
		model:       model,
		temperature: float32(temperature),
		maxTokens:   int32(maxTokens),
		log:         log,
	}
}

func (c *Client) Name() string { return "gemini" }

// Generate folds system turns into the system instruction and maps the
// assistant role to Gemini's model role.
func (c *Client) Generate(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			system = append(system, m.Content)
		case domain.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: c.maxTokens,
	}
	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	c.log.Debug("Gemini completion finished",
		zap.String("model", c.model),
		zap.Int("chars", len(text)),
	)
	return text, nil
}
