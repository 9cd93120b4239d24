package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sushanthnayak-eng/FashionCart/internal/domain"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client), mr
}

func cachedCart(userID string) *domain.Cart {
	return &domain.Cart{
		UserID: userID,
		Lines: []domain.CartLine{
			{Product: testProduct("p1", 899), Quantity: 2},
			{Product: testProduct("p2", 499), Quantity: 1},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestCacheGet_Success(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	cart := cachedCart("user123")
	cartJSON, err := json.Marshal(cart)
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKey("user123"), string(cartJSON)))

	result, err := cache.Get(ctx, "user123")
	require.NoError(t, err)
	assert.Equal(t, "user123", result.UserID)
	require.Len(t, result.Lines, 2)
	assert.Equal(t, int64(2297), result.TotalPrice())
}

func TestCacheGet_Miss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	result, err := cache.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestCacheGet_InvalidJSON(t *testing.T) {
	cache, mr := setupTestRedis(t)

	cartJSON, err := json.Marshal(cachedCart("user123"))
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKey("user123"), string(cartJSON[:10])))

	_, cacheErr := cache.Get(context.Background(), "user123")
	require.ErrorContains(t, cacheErr, "unmarshal cart failed")
}

func TestCacheSet_StoresWithTTL(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	cart := cachedCart("user456")
	require.NoError(t, cache.Set(ctx, "user456", cart))

	stored, err := mr.Get(cacheKey("user456"))
	require.NoError(t, err)

	var decoded domain.Cart
	require.NoError(t, json.Unmarshal([]byte(stored), &decoded))
	assert.Equal(t, cart.TotalPrice(), decoded.TotalPrice())

	ttl := mr.TTL(cacheKey("user456"))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.LessOrEqual(t, ttl, 20*time.Minute)
}

func TestCacheDelete(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "user789", cachedCart("user789")))
	require.NoError(t, cache.Delete(ctx, "user789"))

	assert.False(t, mr.Exists(cacheKey("user789")))

	// Deleting a missing key is not an error.
	assert.NoError(t, cache.Delete(ctx, "user789"))
}
