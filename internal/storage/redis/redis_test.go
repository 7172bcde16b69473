package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glassquote/internal/storage"
	redisstore "glassquote/internal/storage/redis"
	redisclient "glassquote/pkg/redis"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redisstore.Storage) {
	mr := miniredis.RunT(t)
	client := redisclient.New(redisclient.Options{Addr: mr.Addr()})
	s := redisstore.New(client, "glassquote:")
	t.Cleanup(func() { _ = s.Close() })
	return mr, s
}

func TestStorage_SaveLoadDelete(t *testing.T) {
	mr, s := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, storage.KeyJobs, []byte(`[{"id":"j-1"}]`)))

	raw, err := mr.Get("glassquote:jobs")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"j-1"}]`, raw)
	assert.Zero(t, mr.TTL("glassquote:jobs"))

	data, err := s.Load(ctx, storage.KeyJobs)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"j-1"}]`, string(data))

	require.NoError(t, s.Delete(ctx, storage.KeyJobs))
	assert.False(t, mr.Exists("glassquote:jobs"))
}

func TestStorage_LoadMissing(t *testing.T) {
	_, s := setupTestRedis(t)

	_, err := s.Load(context.Background(), storage.KeyCustomers)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_BackendFailure(t *testing.T) {
	mr, s := setupTestRedis(t)
	mr.SetError("READONLY replica")

	_, err := s.Load(context.Background(), storage.KeyLeads)
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)

	assert.Error(t, s.Save(context.Background(), storage.KeyLeads, []byte("[]")))
}

type lead struct {
	ID string `json:"id"`
}

func (l lead) RecordID() string { return l.ID }

func TestStorage_BacksCollection(t *testing.T) {
	mr, s := setupTestRedis(t)
	ctx := context.Background()

	c := storage.NewCollection[lead](s, storage.KeyLeads)
	require.NoError(t, c.Put(ctx, lead{ID: "l-1"}))
	require.NoError(t, c.Put(ctx, lead{ID: "l-2"}))

	items, err := c.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []lead{{ID: "l-1"}, {ID: "l-2"}}, items)

	raw, err := mr.Get("glassquote:leads")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"l-1"},{"id":"l-2"}]`, raw)
}
