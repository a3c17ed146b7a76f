//go:build integration

package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.uber.org/zap"

	"github.com/seu-repo/clinic-advisor/internal/adapter/cache"
)

func TestProfileRepository_RedisContainer(t *testing.T) {
	ctx := context.Background()

	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	url, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	c, err := cache.NewRedisCache(url, "clinic-it:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	repo := NewProfileRepository(c, zap.NewNop())

	require.NoError(t, repo.Ping(ctx))

	got, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	want := newProfile()
	require.NoError(t, repo.Save(ctx, want))

	got, err = repo.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Specialties, got.Specialties)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))

	require.NoError(t, repo.Delete(ctx))
	got, err = repo.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
