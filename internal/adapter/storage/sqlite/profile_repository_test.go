package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

func newRepo(t *testing.T) *ProfileRepository {
	t.Helper()
	repo, err := Open(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func profile(id string, updated time.Time) *domain.ClinicProfile {
	return &domain.ClinicProfile{
		ID:              id,
		CreatedAt:       updated,
		UpdatedAt:       updated,
		OpeningStatus:   domain.OpeningOverThree,
		RegionCity:      "광주 서구",
		RegionDong:      "치평동",
		BuildingType:    domain.BuildingRetail,
		Specialties:     []domain.Specialty{domain.SpecialtyHerbal},
		PatientGroup:    domain.PatientElderly,
		MonthlyPatients: 420,
		StaffCount:      6,
		DailyHours:      8,
	}
}

func TestProfileRepository_EmptyStore(t *testing.T) {
	repo := newRepo(t)

	got, err := repo.Current(context.Background())

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProfileRepository_SaveKeepsSingleProfile(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	t0 := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, profile("a", t0)))
	require.NoError(t, repo.Save(ctx, profile("b", t0.Add(time.Hour))))

	updated := profile("b", t0.Add(2*time.Hour))
	updated.MonthlyPatients = 450
	require.NoError(t, repo.Save(ctx, updated))

	var count int
	require.NoError(t, repo.db.Get(&count, `SELECT COUNT(*) FROM clinic_profiles`))
	assert.Equal(t, 1, count)

	got, err := repo.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "b", got.ID)
	assert.Equal(t, 450, got.MonthlyPatients)
	assert.True(t, got.UpdatedAt.Equal(t0.Add(2*time.Hour)))
}

func TestProfileRepository_Delete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, profile("a", time.Now().UTC())))

	require.NoError(t, repo.Delete(ctx))

	got, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProfileRepository_CorruptPayloadReadsAsAbsent(t *testing.T) {
	repo := newRepo(t)
	_, err := repo.db.Exec(`INSERT INTO clinic_profiles VALUES ('x', '{broken', '2025-01-01', '2025-01-01')`)
	require.NoError(t, err)

	got, err := repo.Current(context.Background())

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOpen_FileDatabasePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "clinic.db")
	ctx := context.Background()

	repo, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, profile("persisted", time.Now().UTC())))
	require.NoError(t, repo.Close())

	reopened, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "persisted", got.ID)
	assert.NoError(t, reopened.Ping(ctx))
}
