package docstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *RedisStore {
	t.Helper()
	s := miniredis.RunT(t)
	return MustRedis("redis://" + s.Addr())
}

func TestRedisStore_GetMissing(t *testing.T) {
	store := setupRedis(t)
	defer store.Close()

	_, err := store.Get(context.Background(), KeyProposals)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_PutReplacesDocument(t *testing.T) {
	store := setupRedis(t)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, KeyProposals, []byte(`[{"id":1}]`)))
	got, err := store.Get(ctx, KeyProposals)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), got)

	// Whole-document replace, not append.
	require.NoError(t, store.Put(ctx, KeyProposals, []byte(`[]`)))
	got, err = store.Get(ctx, KeyProposals)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestRedisStore_KeysAreIndependent(t *testing.T) {
	store := setupRedis(t)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, KeyProposals, []byte(`[1]`)))
	_, err := store.Get(ctx, KeyAnnouncements)
	assert.ErrorIs(t, err, ErrNotFound)
}
