package mocks

import (
	"context"
	"sync"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

// MockProfileRepository is a mock implementation of ports.ProfileRepository.
// Without overrides it keeps the saved profile in memory.
type MockProfileRepository struct {
	mu      sync.Mutex
	Profile *domain.ClinicProfile

	CurrentFunc func(ctx context.Context) (*domain.ClinicProfile, error)
	SaveFunc    func(ctx context.Context, profile *domain.ClinicProfile) error
	DeleteFunc  func(ctx context.Context) error
	PingFunc    func(ctx context.Context) error
}

func (m *MockProfileRepository) Current(ctx context.Context) (*domain.ClinicProfile, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Profile == nil {
		return nil, nil
	}
	cp := *m.Profile
	return &cp, nil
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *domain.ClinicProfile) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, profile)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *profile
	m.Profile = &cp
	return nil
}

func (m *MockProfileRepository) Delete(ctx context.Context) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Profile = nil
	return nil
}

func (m *MockProfileRepository) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
