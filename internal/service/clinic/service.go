// Package clinic validates, stores and announces the clinic profile.
package clinic

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/domain"
	"github.com/seu-repo/clinic-advisor/internal/observability/telemetry"
	"github.com/seu-repo/clinic-advisor/internal/ports"
)

// ProfileEvent is published on every profile change.
type ProfileEvent struct {
	ID        string    `json:"id,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Service struct {
	repo  ports.ProfileRepository
	queue ports.MessageQueue
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repo ports.ProfileRepository, queue ports.MessageQueue, log *zap.Logger) *Service {
	return &Service{
		repo:  repo,
		queue: queue,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Decode(raw []byte) (*domain.ClinicProfile, error) {
	return DecodeProfile(raw)
}

func (s *Service) Current(ctx context.Context) (*domain.ClinicProfile, error) {
	p, err := s.repo.Current(ctx)
	if err != nil {
		telemetry.ProfileOperationsTotal.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	telemetry.ProfileOperationsTotal.WithLabelValues("get", "ok").Inc()
	return p, nil
}

// Save validates raw and upserts it as the current profile. An existing
// profile with the same id keeps its creation time.
func (s *Service) Save(ctx context.Context, raw []byte) (*domain.ClinicProfile, error) {
	p, err := DecodeProfile(raw)
	if err != nil {
		telemetry.ProfileOperationsTotal.WithLabelValues("save", "invalid").Inc()
		return nil, err
	}

	now := s.now()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	existing, err := s.repo.Current(ctx)
	if err != nil {
		s.log.Warn("Could not read existing profile before save", zap.Error(err))
	}
	switch {
	case existing != nil && existing.ID == p.ID && !existing.CreatedAt.IsZero():
		p.CreatedAt = existing.CreatedAt
	case p.CreatedAt.IsZero():
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if err := s.repo.Save(ctx, p); err != nil {
		telemetry.ProfileOperationsTotal.WithLabelValues("save", "error").Inc()
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	telemetry.ProfileOperationsTotal.WithLabelValues("save", "ok").Inc()

	s.log.Info("Clinic profile saved",
		zap.String("id", p.ID),
		zap.String("region", p.RegionCity+" "+p.RegionDong),
	)
	s.publish(ports.SubjectProfileSaved, ProfileEvent{ID: p.ID, UpdatedAt: p.UpdatedAt})
	return p, nil
}

func (s *Service) Delete(ctx context.Context) error {
	if err := s.repo.Delete(ctx); err != nil {
		telemetry.ProfileOperationsTotal.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	telemetry.ProfileOperationsTotal.WithLabelValues("delete", "ok").Inc()

	s.log.Info("Clinic profile deleted")
	s.publish(ports.SubjectProfileDeleted, ProfileEvent{UpdatedAt: s.now()})
	return nil
}

func (s *Service) publish(subject string, event ProfileEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		s.log.Error("Failed to encode profile event", zap.Error(err))
		return
	}
	if err := s.queue.Publish(subject, data); err != nil {
		s.log.Warn("Failed to publish profile event",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

var _ ports.ProfileService = (*Service)(nil)
