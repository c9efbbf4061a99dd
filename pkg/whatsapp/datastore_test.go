package whatsapp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mau.fi/whatsmeow/store"
)

func TestNormalizeDatastore(t *testing.T) {
	assert.Equal(t, "sqlite", normalizeDatastoreDriver(""))
	assert.Equal(t, "sqlite", normalizeDatastoreDriver("SQLite3"))
	assert.Equal(t, "pgx", normalizeDatastoreDriver("postgresql"))
	assert.Equal(t, "postgres", normalizeDatastoreDriver("postgres"))

	assert.Equal(t, defaultSQLiteDSN, normalizeDatastoreDSN("sqlite", ""))
	assert.Equal(t, "file:relay.db?_pragma=foreign_keys(1)", normalizeDatastoreDSN("sqlite", "file:relay.db"))
	assert.Equal(t,
		"postgres://u:p@db/wa?sslmode=disable&prefer_simple_protocol=true&statement_cache_capacity=0&default_query_exec_mode=simple_protocol",
		normalizeDatastoreDSN("pgx", "postgres://u:p@db/wa?sslmode=disable"))
	assert.Equal(t, "postgres://db/wa", normalizeDatastoreDSN("postgres", "postgres://db/wa"))
}

func TestOpenSQLiteDatastore(t *testing.T) {
	dsn := "file:" + t.TempDir() + "/wa.db?_pragma=foreign_keys(1)"
	container, err := openDatastore(context.Background(), "sqlite", dsn)
	require.NoError(t, err)
	defer container.Close()

	device, err := container.GetFirstDevice(context.Background())
	require.NoError(t, err)
	assert.Nil(t, device.ID)
}

func TestVersionRefresherThrottles(t *testing.T) {
	original := store.GetWAVersion()
	t.Cleanup(func() { store.SetWAVersion(original) })

	calls := 0
	r := newVersionRefresher()
	r.minInterval = time.Hour
	r.fetch = func(ctx context.Context) (*store.WAVersionContainer, error) {
		calls++
		return &store.WAVersionContainer{2, 3000, 1020304050}, nil
	}

	status, refreshed, err := r.refresh(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, refreshed)
	assert.Equal(t, store.WAVersionContainer{2, 3000, 1020304050}, status.CurrentVersion)
	require.NotNil(t, status.LastRefreshed)

	_, refreshed, err = r.refresh(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, refreshed)

	_, refreshed, _ = r.refresh(context.Background(), true)
	assert.True(t, refreshed)
	assert.Equal(t, 2, calls)
}

func TestVersionRefresherRecordsError(t *testing.T) {
	r := newVersionRefresher()
	r.fetch = func(ctx context.Context) (*store.WAVersionContainer, error) {
		return nil, errors.New("upstream down")
	}

	status, refreshed, err := r.refresh(context.Background(), true)
	assert.Error(t, err)
	assert.True(t, refreshed)
	assert.Equal(t, "upstream down", status.LastError)
}
