package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/pkg/storage"
)

type testEnv struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	tweetRepo  repository.TweetRepository
	followRepo repository.FollowRepository
	likeRepo   repository.LikeRepository
	mediaRepo  repository.MediaRepository

	media MediaService
	rel   RelationshipService
	tweet TweetService
	feed  FeedService
	user  UserService
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithCache(t, nil)
}

func newTestEnvWithCache(t *testing.T, cache *LikeCache) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Tweet{}, &model.Like{}, &model.Follow{}, &model.Media{},
	))

	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	env := &testEnv{
		db:         db,
		userRepo:   repository.NewUserRepository(db),
		tweetRepo:  repository.NewTweetRepository(db),
		followRepo: repository.NewFollowRepository(db),
		likeRepo:   repository.NewLikeRepository(db),
		mediaRepo:  repository.NewMediaRepository(db),
	}
	env.media = NewMediaService(store, env.mediaRepo)
	env.rel = NewRelationshipService(db, env.userRepo, env.tweetRepo, env.followRepo, env.likeRepo, cache)
	env.tweet = NewTweetService(db, env.tweetRepo, env.media, cache)
	env.feed = NewFeedService(env.userRepo, env.tweetRepo, env.followRepo, env.likeRepo, env.media)
	env.user = NewUserService(db, env.userRepo, env.rel, cache)
	return env
}

func (e *testEnv) createUser(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Name: name}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) createTweet(t *testing.T, authorID int64, content string) *model.Tweet {
	t.Helper()
	tw := &model.Tweet{Content: content, AuthorID: authorID}
	require.NoError(t, e.db.Create(tw).Error)
	return tw
}
