// Package kv stores the clinic profile as one JSON document in a
// key/value cache (Redis or the in-process cache).
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/domain"
	"github.com/seu-repo/clinic-advisor/internal/ports"
)

// ProfileKey is the key the current profile is stored under.
const ProfileKey = "clinic-profile"

type ProfileRepository struct {
	cache ports.Cache
	log   *zap.Logger
}

func NewProfileRepository(cache ports.Cache, log *zap.Logger) *ProfileRepository {
	return &ProfileRepository{cache: cache, log: log}
}

func (r *ProfileRepository) Current(ctx context.Context) (*domain.ClinicProfile, error) {
	raw, err := r.cache.Get(ctx, ProfileKey)
	if errors.Is(err, ports.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var p domain.ClinicProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		// A corrupt document reads as absent so the user can save again.
		r.log.Warn("Discarding unreadable stored profile", zap.Error(err))
		return nil, nil
	}
	return &p, nil
}

func (r *ProfileRepository) Save(ctx context.Context, profile *domain.ClinicProfile) error {
	if err := r.cache.Set(ctx, ProfileKey, profile, 0); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context) error {
	if err := r.cache.Delete(ctx, ProfileKey); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Ping(ctx context.Context) error {
	return r.cache.Ping()
}
