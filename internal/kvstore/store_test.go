package kvstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name"`
	Times []string `json:"times"`
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "medtrack:"), mr
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	var got sample
	found, err := s.Get(ctx, KeyMedications, &got)
	require.NoError(t, err)
	assert.False(t, found, "fresh store must not report a value")

	in := sample{Name: "Losartana", Times: []string{"08:00", "20:00"}}
	require.NoError(t, s.Set(ctx, KeyMedications, in))

	found, err = s.Get(ctx, KeyMedications, &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, in, got)

	// overwrite replaces the whole value
	require.NoError(t, s.Set(ctx, KeyMedications, sample{Name: "Dipirona"}))
	got = sample{}
	_, err = s.Get(ctx, KeyMedications, &got)
	require.NoError(t, err)
	assert.Equal(t, "Dipirona", got.Name)
	assert.Empty(t, got.Times)

	require.NoError(t, s.Remove(ctx, KeyMedications))
	found, err = s.Get(ctx, KeyMedications, &got)
	require.NoError(t, err)
	assert.False(t, found)

	// removing a missing key is not an error
	require.NoError(t, s.Remove(ctx, KeyCart))
}

func TestMemoryStore_GetSetRemove(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestRedisStore_GetSetRemove(t *testing.T) {
	s, _ := newRedisStore(t)
	exerciseStore(t, s)
}

func TestRedisStore_UsesPrefix(t *testing.T) {
	s, mr := newRedisStore(t)
	require.NoError(t, s.Set(context.Background(), KeyUser, map[string]string{"id": "user-1"}))
	assert.True(t, mr.Exists("medtrack:"+KeyUser))
	assert.False(t, mr.Exists(KeyUser))
}

func TestRedisStore_CorruptValue(t *testing.T) {
	s, mr := newRedisStore(t)
	require.NoError(t, mr.Set("medtrack:"+KeyOrders, "{not json"))
	var out []sample
	_, err := s.Get(context.Background(), KeyOrders, &out)
	assert.Error(t, err)
}

func TestMemoryStore_ValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	in := []string{"a"}
	require.NoError(t, s.Set(ctx, KeyCart, in))
	in[0] = "mutated"

	var out []string
	_, err := s.Get(ctx, KeyCart, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, out)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()
	assert.Error(t, s.Set(ctx, KeyCart, 1))
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("")
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, b)

	b, err = ParseBackend(" Redis ")
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, b)

	_, err = ParseBackend("sqlite")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpen_Memory(t *testing.T) {
	s, closeFn, err := Open(context.Background(), Options{Backend: BackendMemory})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.NoError(t, closeFn(context.Background()))
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	s, closeFn, err := Open(context.Background(), Options{Backend: BackendRedis, Redis: RedisOptions{Addr: mr.Addr()}})
	require.NoError(t, err)
	exerciseStore(t, s)
	assert.NoError(t, closeFn(context.Background()))
}
