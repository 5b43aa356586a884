package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/pkg/apperr"
)

func TestCreateUserDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.user.Create(ctx, "Alice", "pw")
	require.NoError(t, err)
	_, err = env.user.Create(ctx, "Alice", "pw")
	assert.ErrorIs(t, err, apperr.ErrUserExists)
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")
	carol := env.createUser(t, "Carol")

	require.NoError(t, env.rel.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, env.rel.Follow(ctx, carol.ID, alice.ID))

	profile, err := env.user.Profile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.Name)
	require.Len(t, profile.Following, 1)
	assert.Equal(t, bob.ID, profile.Following[0].ID)
	require.Len(t, profile.Followers, 1)
	assert.Equal(t, carol.ID, profile.Followers[0].ID)
}

func TestProfileNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.user.Profile(context.Background(), 999)
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestSearchCaseInsensitiveAndCapped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createUser(t, "Alice")
	env.createUser(t, "alastor")
	env.createUser(t, "Bob")

	refs, err := env.user.Search(ctx, "AL")
	require.NoError(t, err)
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	assert.ElementsMatch(t, []string{"Alice", "alastor"}, names)

	for i := 0; i < 15; i++ {
		env.createUser(t, fmt.Sprintf("searchme%02d", i))
	}
	refs, err = env.user.Search(ctx, "searchme")
	require.NoError(t, err)
	assert.Len(t, refs, 10)
}

func TestDeleteUserCascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")

	// alice follows bob and bob follows alice
	require.NoError(t, env.rel.Follow(ctx, alice.ID, bob.ID))
	require.NoError(t, env.rel.Follow(ctx, bob.ID, alice.ID))

	// alice's tweet, liked by bob, with media attached
	m, err := env.media.Upload(ctx, "pic.png", strings.NewReader("bytes"))
	require.NoError(t, err)
	aliceTweet, err := env.tweet.Create(ctx, alice.ID, "alice's", []int64{m.ID})
	require.NoError(t, err)
	require.NoError(t, env.rel.Like(ctx, bob.ID, aliceTweet.ID))

	// alice also liked bob's tweet
	bobTweet := env.createTweet(t, bob.ID, "bob's")
	require.NoError(t, env.rel.Like(ctx, alice.ID, bobTweet.ID))

	require.NoError(t, env.user.Delete(ctx, alice.ID))

	var n int64
	require.NoError(t, env.db.Model(&model.Follow{}).
		Where("follower_id = ? OR following_id = ?", alice.ID, alice.ID).Count(&n).Error)
	assert.Zero(t, n, "follow edges on both sides must be gone")

	require.NoError(t, env.db.Model(&model.Tweet{}).Where("author_id = ?", alice.ID).Count(&n).Error)
	assert.Zero(t, n, "alice's tweets must be gone")

	require.NoError(t, env.db.Model(&model.Like{}).
		Where("user_id = ? OR tweet_id = ?", alice.ID, aliceTweet.ID).Count(&n).Error)
	assert.Zero(t, n, "likes by alice and on her tweets must be gone")

	// her tweet's media survives, detached
	detached, err := env.mediaRepo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, detached)
	assert.Nil(t, detached.TweetID)

	// bob is untouched
	survivor, err := env.tweetRepo.GetByID(ctx, bobTweet.ID)
	require.NoError(t, err)
	assert.NotNil(t, survivor)

	_, err = env.user.Profile(ctx, alice.ID)
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestDeleteUserMissing(t *testing.T) {
	env := newTestEnv(t)
	err := env.user.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestEnsureUsersIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	names := []string{"test", "Alice", "Bob", "Charlie"}

	require.NoError(t, env.user.EnsureUsers(ctx, names))
	require.NoError(t, env.user.EnsureUsers(ctx, names))

	var n int64
	require.NoError(t, env.db.Model(&model.User{}).Count(&n).Error)
	assert.EqualValues(t, len(names), n)
}
