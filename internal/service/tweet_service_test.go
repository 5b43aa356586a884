package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/pkg/apperr"
)

func TestCreateTweetWithMedia(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "Alice")

	m1, err := env.media.Upload(ctx, "a.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	m2, err := env.media.Upload(ctx, "b.jpg", strings.NewReader("jpg-bytes"))
	require.NoError(t, err)

	// the bogus id in the middle must neither fail creation nor drop m2
	tweet, err := env.tweet.Create(ctx, alice.ID, "with media", []int64{m1.ID, 424242, m2.ID})
	require.NoError(t, err)

	paths, err := env.media.ListAttachments(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{m1.StoragePath, m2.StoragePath}, paths)
}

func TestDeleteTweetCascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")

	m, err := env.media.Upload(ctx, "pic.png", strings.NewReader("bytes"))
	require.NoError(t, err)
	tweet, err := env.tweet.Create(ctx, alice.ID, "doomed", []int64{m.ID})
	require.NoError(t, err)
	require.NoError(t, env.rel.Like(ctx, bob.ID, tweet.ID))

	require.NoError(t, env.tweet.Delete(ctx, alice.ID, tweet.ID))

	_, err = env.rel.CountLikes(ctx, tweet.ID)
	assert.ErrorIs(t, err, apperr.ErrTweetNotFound)

	var likeCount int64
	require.NoError(t, env.db.Model(&model.Like{}).Where("tweet_id = ?", tweet.ID).Count(&likeCount).Error)
	assert.Zero(t, likeCount)

	// media record survives, detached
	detached, err := env.mediaRepo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, detached)
	assert.Nil(t, detached.TweetID)
	assert.Equal(t, m.StoragePath, detached.StoragePath)
}

func TestDeleteTweetForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")
	tweet := env.createTweet(t, bob.ID, "not yours")

	err := env.tweet.Delete(ctx, alice.ID, tweet.ID)
	assert.ErrorIs(t, err, apperr.ErrNotTweetAuthor)

	// tweet untouched
	got, err := env.tweetRepo.GetByID(ctx, tweet.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestDeleteTweetMissing(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "Alice")

	err := env.tweet.Delete(context.Background(), alice.ID, 404)
	assert.ErrorIs(t, err, apperr.ErrTweetNotFound)
}

func TestListAllNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "Alice")

	first, err := env.tweet.Create(ctx, alice.ID, "first", nil)
	require.NoError(t, err)
	second, err := env.tweet.Create(ctx, alice.ID, "second", nil)
	require.NoError(t, err)

	all, err := env.tweet.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}
