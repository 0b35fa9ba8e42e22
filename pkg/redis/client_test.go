package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable: %v", err)
	}
	orig := client
	t.Cleanup(func() {
		client = orig
		srv.Close()
	})
	require.NoError(t, Init("redis://"+srv.Addr(), ""))
	return srv
}

func TestInitInvalidURL(t *testing.T) {
	err := Init("://invalid-url", "")
	assert.Error(t, err)
}

func TestHelpers_NotInitialized(t *testing.T) {
	orig := client
	t.Cleanup(func() { client = orig })
	client = nil

	ctx := context.Background()
	assert.ErrorIs(t, Set(ctx, "k", "v", time.Second), ErrNotInitialized)
	_, err := Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, Del(ctx, "k"), ErrNotInitialized)
	_, err = SetNX(ctx, "k", "v", time.Second)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestBasicOpsWithUnreachableRedis(t *testing.T) {
	orig := client
	t.Cleanup(func() { client = orig })

	cli := goredis.NewClient(&goredis.Options{
		Addr:         "127.0.0.1:0",
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
	})
	SetClient(cli)
	assert.NotNil(t, GetClient())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.Error(t, Set(ctx, "k", "v", time.Second))
	_, err := Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, Del(ctx, "k"))
	_, err = SetNX(ctx, "k", "v", time.Second)
	assert.Error(t, err)
}

func TestBasicOpsWithMiniredis(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, Set(ctx, "k", "v", time.Minute))
	v, err := Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	ok, err := SetNX(ctx, "k", "other", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, Del(ctx, "k"))
	_, err = Get(ctx, "k")
	assert.True(t, IsNil(err))
}

func TestCooldown_Acquire(t *testing.T) {
	srv := withMiniredis(t)
	ctx := context.Background()
	cd := NewCooldown("otp-resend")

	ok, err := cd.Acquire(ctx, "payment-1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cd.Acquire(ctx, "payment-1", 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	srv.FastForward(31 * time.Second)
	ok, err = cd.Acquire(ctx, "payment-1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCooldown_FailsOpenWithoutRedis(t *testing.T) {
	orig := client
	t.Cleanup(func() { client = orig })
	client = nil

	ok, err := NewCooldown("x").Acquire(context.Background(), "k", time.Second)
	assert.Error(t, err)
	assert.True(t, ok)
}
