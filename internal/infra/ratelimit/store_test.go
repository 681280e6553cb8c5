package ratelimit

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_MemoryWhenNoAddr(t *testing.T) {
	s := NewStore(RedisConfig{})
	require.NotNil(t, s)
	require.NoError(t, s.Set("k", []byte("v"), 0))
	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestNewStore_RedisWhenReachable(t *testing.T) {
	mrs, err := miniredis.Run()
	require.NoError(t, err)
	defer mrs.Close()

	s := NewStore(RedisConfig{Addr: mrs.Addr()})
	require.NotNil(t, s)
	require.NoError(t, s.Set("k", []byte("v"), 0))
	assert.True(t, mrs.Exists("k"))
}

func TestNewStore_UnreachableRedisStillReturnsStorage(t *testing.T) {
	assert.NotNil(t, NewStore(RedisConfig{Addr: "127.0.0.1:1"}))
}
