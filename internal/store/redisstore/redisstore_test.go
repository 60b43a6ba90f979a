package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sbfquiz/internal/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("SBFQUIZ_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SBFQUIZ_TEST_REDIS_ADDR not set")
	}
	s, err := Open(context.Background(), Options{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestKey(t *testing.T) {
	got := key(store.Scope{LicenseID: "sbf-binnen", CategoryID: "basisfragen"})
	if got != "sbfquiz:quiz-progress-sbf-binnen-basisfragen" {
		t.Errorf("key = %q", got)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	scope := store.Scope{LicenseID: "test-" + uuid.NewString(), CategoryID: "basisfragen"}
	t.Cleanup(func() { s.Delete(ctx, scope) })

	got, err := s.Get(ctx, scope)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Put(ctx, scope, []byte(`{"version":2}`)))
	require.NoError(t, s.Put(ctx, scope, []byte(`{"version":2,"current":"3"}`)))

	got, err = s.Get(ctx, scope)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":2,"current":"3"}`, string(got))

	require.NoError(t, s.Delete(ctx, scope))
	got, err = s.Get(ctx, scope)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.HealthCheck(ctx))
}
