// Package sqlite is the single-file profile store for local development.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS clinic_profiles (
	id         TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

type profileRow struct {
	ID        string `db:"id"`
	Payload   string `db:"payload"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type ProfileRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

// Open opens (creating if needed) the database at path. ":memory:" gives a
// private in-memory database.
func Open(path string, log *zap.Logger) (*ProfileRepository, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	log.Info("SQLite profile store ready", zap.String("path", path))
	return &ProfileRepository{db: db, log: log}, nil
}

func (r *ProfileRepository) Close() error {
	return r.db.Close()
}

func (r *ProfileRepository) Current(ctx context.Context) (*domain.ClinicProfile, error) {
	var row profileRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, payload, created_at, updated_at FROM clinic_profiles ORDER BY updated_at DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	var p domain.ClinicProfile
	if err := json.Unmarshal([]byte(row.Payload), &p); err != nil {
		r.log.Warn("Discarding unreadable stored profile",
			zap.String("id", row.ID),
			zap.Error(err),
		)
		return nil, nil
	}
	return &p, nil
}

func (r *ProfileRepository) Save(ctx context.Context, profile *domain.ClinicProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	row := profileRow{
		ID:        profile.ID,
		Payload:   string(payload),
		CreatedAt: profile.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: profile.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clinic_profiles WHERE id <> ?`, row.ID); err != nil {
		return fmt.Errorf("clear profiles: %w", err)
	}
	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO clinic_profiles (id, payload, created_at, updated_at)
		VALUES (:id, :payload, :created_at, :updated_at)
		ON CONFLICT(id) DO UPDATE SET
			payload = excluded.payload,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`, row)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return tx.Commit()
}

func (r *ProfileRepository) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM clinic_profiles`); err != nil {
		return fmt.Errorf("delete profiles: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
