// Package anthropic generates narrative text through the Claude Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

const DefaultModel = "claude-sonnet-4-20250514"

// Messager is the subset of the SDK's messages service used here.
type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type Client struct {
	messages    Messager
	model       string
	temperature float64
	maxTokens   int64
	log         *zap.Logger
}

func NewClient(apiKey, model string, temperature float64, maxTokens int, log *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: API key not configured")
	}
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return NewClientWithMessager(&c.Messages, model, temperature, maxTokens, log), nil
}

func NewClientWithMessager(m Messager, model string, temperature float64, maxTokens int, log *zap.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = 800
	}
	return &Client{
		messages:    m,
		model:       model,
		temperature: temperature,
		maxTokens:   int64(maxTokens),
		log:         log,
	}
}

func (c *Client) Name() string { return "anthropic" }

// Generate sends system turns as the system prompt and the rest as the
// conversation.
func (c *Client) Generate(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	var system []anthropic.TextBlockParam
	turns := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case domain.RoleAssistant:
			turns = append(turns, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			turns = append(turns, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	resp, err := c.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   c.maxTokens,
		System:      system,
		Messages:    turns,
		Temperature: anthropic.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: create message: %w", err)
	}

	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}

	c.log.Debug("Anthropic completion finished",
		zap.String("model", c.model),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)
	return sb.String(), nil
}
