package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisCache(t *testing.T) (*LikeCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewLikeCache(rdb, time.Minute), mr
}

func TestLikeCacheReadThrough(t *testing.T) {
	cache, mr := newMiniredisCache(t)
	env := newTestEnvWithCache(t, cache)
	ctx := context.Background()

	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")
	tweet := env.createTweet(t, bob.ID, "hot take")
	require.NoError(t, env.rel.Like(ctx, alice.ID, tweet.ID))

	count, err := env.rel.CountLikes(ctx, tweet.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.True(t, mr.Exists("tweet:likes:"+itoa(tweet.ID)), "count should be cached after a read")

	// second read served from cache
	count, err = env.rel.CountLikes(ctx, tweet.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestLikeCacheInvalidation(t *testing.T) {
	cache, mr := newMiniredisCache(t)
	env := newTestEnvWithCache(t, cache)
	ctx := context.Background()

	alice := env.createUser(t, "Alice")
	carol := env.createUser(t, "Carol")
	bob := env.createUser(t, "Bob")
	tweet := env.createTweet(t, bob.ID, "hot take")

	require.NoError(t, env.rel.Like(ctx, alice.ID, tweet.ID))
	count, err := env.rel.CountLikes(ctx, tweet.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// a new like must drop the cached value so the next read is exact
	require.NoError(t, env.rel.Like(ctx, carol.ID, tweet.ID))
	assert.False(t, mr.Exists("tweet:likes:"+itoa(tweet.ID)))

	count, err = env.rel.CountLikes(ctx, tweet.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, env.rel.Unlike(ctx, alice.ID, tweet.ID))
	count, err = env.rel.CountLikes(ctx, tweet.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestLikeCacheInvalidatedOnTweetDelete(t *testing.T) {
	cache, mr := newMiniredisCache(t)
	env := newTestEnvWithCache(t, cache)
	ctx := context.Background()

	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")
	tweet, err := env.tweet.Create(ctx, bob.ID, "doomed", nil)
	require.NoError(t, err)
	require.NoError(t, env.rel.Like(ctx, alice.ID, tweet.ID))

	_, err = env.rel.CountLikes(ctx, tweet.ID)
	require.NoError(t, err)

	require.NoError(t, env.tweet.Delete(ctx, bob.ID, tweet.ID))
	assert.False(t, mr.Exists("tweet:likes:"+itoa(tweet.ID)))
}

func TestLikeCacheInvalidatedOnUserDelete(t *testing.T) {
	cache, mr := newMiniredisCache(t)
	env := newTestEnvWithCache(t, cache)
	ctx := context.Background()

	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")
	tweet := env.createTweet(t, bob.ID, "survives")
	require.NoError(t, env.rel.Like(ctx, alice.ID, tweet.ID))

	count, err := env.rel.CountLikes(ctx, tweet.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	require.True(t, mr.Exists("tweet:likes:"+itoa(tweet.ID)))

	// deleting the liker removes the edge; the cached count on the other
	// author's tweet must not outlive it
	require.NoError(t, env.user.Delete(ctx, alice.ID))
	assert.False(t, mr.Exists("tweet:likes:"+itoa(tweet.ID)))

	count, err = env.rel.CountLikes(ctx, tweet.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestNilLikeCacheIsNoop(t *testing.T) {
	var cache *LikeCache
	ctx := context.Background()
	_, ok := cache.Get(ctx, 1)
	assert.False(t, ok)
	cache.Set(ctx, 1, 5)
	cache.Invalidate(ctx, 1)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
