package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupBackend connects to the database named by POSTGRES_DSN and skips otherwise.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}
	b, err := NewBackend(context.Background(), dsn, nil)
	if err != nil {
		t.Skipf("could not connect to postgres: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBackendRoundTrip(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()
	key := "test_" + uuid.NewString()
	t.Cleanup(func() { _, _ = b.DB().Exec(`DELETE FROM kv WHERE key = $1`, key) })

	_, found, err := b.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, b.Put(ctx, key, []byte(`[{"id":"1"}]`)))
	require.NoError(t, b.Put(ctx, key, []byte(`[]`)))

	got, found, err := b.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[]`, string(got))
}

func TestBackendRejectsInvalidJSON(t *testing.T) {
	b := setupBackend(t)
	key := "test_" + uuid.NewString()
	assert.Error(t, b.Put(context.Background(), key, []byte(`{oops`)))
}
