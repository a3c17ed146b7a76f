package mocks

import (
	"context"
	"sync"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

// MockNarrativeGenerator is a mock implementation of ports.NarrativeGenerator.
// It records every request it receives.
type MockNarrativeGenerator struct {
	mu           sync.Mutex
	Calls        [][]domain.ChatMessage
	Reply        string
	GenerateFunc func(ctx context.Context, messages []domain.ChatMessage) (string, error)
}

func (m *MockNarrativeGenerator) Generate(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, messages)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, messages)
	}
	return m.Reply, nil
}

func (m *MockNarrativeGenerator) Name() string { return "mock" }

// CallCount returns how many times Generate was invoked.
func (m *MockNarrativeGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockAnalysisService is a mock implementation of ports.AnalysisService
type MockAnalysisService struct {
	AnalyzeFunc func(ctx context.Context, kind domain.AnalysisKind, profile domain.ClinicProfile) (*domain.AnalysisEnvelope, error)
}

func (m *MockAnalysisService) Analyze(ctx context.Context, kind domain.AnalysisKind, profile domain.ClinicProfile) (*domain.AnalysisEnvelope, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, kind, profile)
	}
	return &domain.AnalysisEnvelope{Tab: kind}, nil
}

// MockChatService is a mock implementation of ports.ChatService
type MockChatService struct {
	ChatFunc func(ctx context.Context, req domain.ChatRequest) (string, error)
}

func (m *MockChatService) Chat(ctx context.Context, req domain.ChatRequest) (string, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}
	return "", nil
}

// MockProfileService is a mock implementation of ports.ProfileService
type MockProfileService struct {
	DecodeFunc  func(raw []byte) (*domain.ClinicProfile, error)
	CurrentFunc func(ctx context.Context) (*domain.ClinicProfile, error)
	SaveFunc    func(ctx context.Context, raw []byte) (*domain.ClinicProfile, error)
	DeleteFunc  func(ctx context.Context) error
}

func (m *MockProfileService) Decode(raw []byte) (*domain.ClinicProfile, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(raw)
	}
	return &domain.ClinicProfile{}, nil
}

func (m *MockProfileService) Current(ctx context.Context) (*domain.ClinicProfile, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx)
	}
	return nil, nil
}

func (m *MockProfileService) Save(ctx context.Context, raw []byte) (*domain.ClinicProfile, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, raw)
	}
	return &domain.ClinicProfile{}, nil
}

func (m *MockProfileService) Delete(ctx context.Context) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx)
	}
	return nil
}
