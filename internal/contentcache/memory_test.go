package contentcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemory_MissOnEmptyCache(t *testing.T) {
	cache := NewMemory(time.Minute)
	_, ok, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemory_SetThenGet(t *testing.T) {
	cache := NewMemory(time.Minute)
	require.NoError(t, cache.Set(context.Background(), "k", []byte("v")))

	value, ok, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), value)
}

func TestMemory_ExpiredEntryIsAMiss(t *testing.T) {
	cache := NewMemory(time.Minute)
	now := time.Now()
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(context.Background(), "k", []byte("v")))

	now = now.Add(2 * time.Minute)
	_, ok, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemory_ReadRefreshesTTL(t *testing.T) {
	cache := NewMemory(time.Minute)
	now := time.Now()
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(context.Background(), "k", []byte("v")))

	// Keep reading just inside the TTL; the entry must stay alive well past
	// its original expiry.
	for i := 0; i < 5; i++ {
		now = now.Add(45 * time.Second)
		_, ok, err := cache.Get(context.Background(), "k")
		require.NoError(t, err)
		require.True(t, ok, "read %d", i)
	}
}

func TestMemory_SetReplacesValue(t *testing.T) {
	cache := NewMemory(time.Minute)
	require.NoError(t, cache.Set(context.Background(), "k", []byte("old")))
	require.NoError(t, cache.Set(context.Background(), "k", []byte("new")))

	value, _, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), value)
}
