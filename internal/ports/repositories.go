package ports

import (
	"context"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

// ProfileRepository stores the single current clinic profile.
// Current returns nil, nil when no profile has been saved.
type ProfileRepository interface {
	Current(ctx context.Context) (*domain.ClinicProfile, error)
	Save(ctx context.Context, profile *domain.ClinicProfile) error
	Delete(ctx context.Context) error
	Ping(ctx context.Context) error
}
