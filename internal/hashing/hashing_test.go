package hashing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPoolHashAndCompare(t *testing.T) {
	pool := NewPool(bcrypt.MinCost, 2)
	ctx := context.Background()

	hash, err := pool.Hash(ctx, "secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.NotContains(t, hash, "secret1")

	ok, err := pool.Compare(ctx, hash, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = pool.Compare(ctx, hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPoolFreshSaltPerCall(t *testing.T) {
	pool := NewPool(bcrypt.MinCost, 2)
	ctx := context.Background()

	first, err := pool.Hash(ctx, "secret1")
	require.NoError(t, err)
	second, err := pool.Hash(ctx, "secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPoolCompareMalformedHash(t *testing.T) {
	pool := NewPool(bcrypt.MinCost, 2)

	ok, err := pool.Compare(context.Background(), "not-a-bcrypt-hash", "secret1")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestPoolHonorsContextWhileWaiting(t *testing.T) {
	pool := NewPool(bcrypt.MinCost, 1)

	// occupy the only slot
	pool.sem <- struct{}{}
	defer func() { <-pool.sem }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := pool.Hash(ctx, "secret1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
