package ports

import (
	"context"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

// NarrativeGenerator turns role tagged turns into a single completion.
// Implementations may fail or return empty text at any time.
type NarrativeGenerator interface {
	Generate(ctx context.Context, messages []domain.ChatMessage) (string, error)
	Name() string
}

type AnalysisService interface {
	Analyze(ctx context.Context, kind domain.AnalysisKind, profile domain.ClinicProfile) (*domain.AnalysisEnvelope, error)
}

type ChatService interface {
	Chat(ctx context.Context, req domain.ChatRequest) (string, error)
}

// ProfileService validates and persists the clinic profile.
type ProfileService interface {
	Decode(raw []byte) (*domain.ClinicProfile, error)
	Current(ctx context.Context) (*domain.ClinicProfile, error)
	Save(ctx context.Context, raw []byte) (*domain.ClinicProfile, error)
	Delete(ctx context.Context) error
}
