package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

// profileRecord keeps the whole profile as a JSONB document. Timestamps are
// copied from the profile rather than stamped by gorm.
type profileRecord struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Payload   string    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;index;autoUpdateTime:false"`
}

func (profileRecord) TableName() string { return "clinic_profiles" }

type ProfileRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewProfileRepository(db *gorm.DB, log *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:  db,
		log: log,
	}
}

// Current returns the most recently updated profile.
func (r *ProfileRepository) Current(ctx context.Context) (*domain.ClinicProfile, error) {
	var rec profileRecord
	err := r.db.WithContext(ctx).Order("updated_at DESC").First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var p domain.ClinicProfile
	if err := json.Unmarshal([]byte(rec.Payload), &p); err != nil {
		r.log.Warn("Discarding unreadable stored profile",
			zap.String("id", rec.ID),
			zap.Error(err),
		)
		return nil, nil
	}
	return &p, nil
}

// Save upserts the profile and removes any other rows so the table holds a
// single current profile.
func (r *ProfileRepository) Save(ctx context.Context, profile *domain.ClinicProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	rec := profileRecord{
		ID:        profile.ID,
		Payload:   string(payload),
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id <> ?", rec.ID).Delete(&profileRecord{}).Error; err != nil {
			return err
		}
		return tx.Save(&rec).Error
	})
}

func (r *ProfileRepository) Delete(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&profileRecord{}).Error
}

func (r *ProfileRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
