// Package disabled provides the narrative generator used when no LLM
// provider is configured.
package disabled

import (
	"context"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

type Generator struct{}

func (Generator) Name() string { return "none" }

func (Generator) Generate(context.Context, []domain.ChatMessage) (string, error) {
	return "", domain.ErrNarrativeDisabled
}
