package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
)

func TestNewTokenStore_Memory(t *testing.T) {
	for _, dsn := range []string{"", "memory", " MEMORY "} {
		s, err := NewTokenStore(context.Background(), config.ClientStorage{DSN: dsn}, logger.Nop())
		require.NoError(t, err, dsn)
		assert.IsType(t, &memoryStore{}, s, dsn)
	}
}

func TestNewTokenStore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.JSON")

	s, err := NewTokenStore(context.Background(), config.ClientStorage{DSN: path}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &fileStore{}, s)
}

func TestIsPostgresDSN(t *testing.T) {
	assert.True(t, isPostgresDSN("postgres://u:p@localhost/db"))
	assert.True(t, isPostgresDSN("PostgreSQL://localhost/db"))
	assert.False(t, isPostgresDSN("/var/lib/cloud-sync/cache.db"))
	assert.False(t, isPostgresDSN("cache.json"))
}

func TestNewTokenStore_Sealed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	cfg := config.ClientStorage{DSN: path, Secret: "s3cret"}

	s, err := NewTokenStore(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &sealedStore{}, s)
	require.NoError(t, s.Set(ctx, "session", `{"token":"abc"}`))
	require.NoError(t, s.Close())

	// the file holds only the sealed form
	plain, err := NewFileStore(path)
	require.NoError(t, err)
	raw, err := plain.Get(ctx, "session")
	require.NoError(t, err)
	assert.NotContains(t, raw, "abc")

	reopened, err := NewTokenStore(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, `{"token":"abc"}`, got)

	other, err := NewTokenStore(ctx, config.ClientStorage{DSN: path, Secret: "other"}, logger.Nop())
	require.NoError(t, err)
	_, err = other.Get(ctx, "session")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
