package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infracache "github.com/TeamSorcerers/app-financeiro-sub000/infra/cache"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := infracache.NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestMemoryCache_MissReturnsNil(t *testing.T) {
	c := infracache.NewMemoryCache()

	got, err := c.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := infracache.NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := infracache.NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))
	require.NoError(t, c.Delete(ctx, "key"))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting a missing key is not an error.
	require.NoError(t, c.Delete(ctx, "key"))
}
