package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/pkg/apperr"
)

// RelationshipService 关系链服务：关注与点赞
type RelationshipService interface {
	Follow(ctx context.Context, followerID, targetID int64) error
	Unfollow(ctx context.Context, followerID, targetID int64) error
	ListFollowing(ctx context.Context, userID int64) ([]model.UserRef, error)
	ListFollowers(ctx context.Context, userID int64) ([]model.UserRef, error)
	Like(ctx context.Context, userID, tweetID int64) error
	Unlike(ctx context.Context, userID, tweetID int64) error
	CountLikes(ctx context.Context, tweetID int64) (int64, error)
}

type relationshipService struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	tweetRepo  repository.TweetRepository
	followRepo repository.FollowRepository
	likeRepo   repository.LikeRepository
	cache      *LikeCache
}

func NewRelationshipService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	tweetRepo repository.TweetRepository,
	followRepo repository.FollowRepository,
	likeRepo repository.LikeRepository,
	cache *LikeCache,
) RelationshipService {
	return &relationshipService{
		db:         db,
		userRepo:   userRepo,
		tweetRepo:  tweetRepo,
		followRepo: followRepo,
		likeRepo:   likeRepo,
		cache:      cache,
	}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, targetID int64) error {
	if followerID == targetID {
		return apperr.ErrFollowSelf
	}
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperr.ErrTargetNotFound
	}

	// check + insert in one transaction; idx_follow_pair is the backstop for
	// a concurrent duplicate, which must look exactly like the pre-check hit
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewFollowRepository(tx)
		exists, err := repo.Exists(ctx, followerID, targetID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.ErrAlreadyFollowing
		}
		return repo.Create(ctx, followerID, targetID)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrAlreadyFollowing
	}
	return err
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, targetID int64) error {
	deleted, err := s.followRepo.Delete(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.ErrNotFollowing
	}
	return nil
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID int64) ([]model.UserRef, error) {
	edges, err := s.followRepo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(edges))
	for i, e := range edges {
		ids[i] = e.FollowingID
	}
	return s.resolveRefs(ctx, ids)
}

func (s *relationshipService) ListFollowers(ctx context.Context, userID int64) ([]model.UserRef, error) {
	edges, err := s.followRepo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(edges))
	for i, e := range edges {
		ids[i] = e.FollowerID
	}
	return s.resolveRefs(ctx, ids)
}

// resolveRefs preserves edge order; an unresolvable id is skipped rather than
// failing the listing.
func (s *relationshipService) resolveRefs(ctx context.Context, ids []int64) ([]model.UserRef, error) {
	refs := make([]model.UserRef, 0, len(ids))
	for _, id := range ids {
		u, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			continue
		}
		refs = append(refs, u.Ref())
	}
	return refs, nil
}

func (s *relationshipService) Like(ctx context.Context, userID, tweetID int64) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet == nil {
		return apperr.ErrTweetNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewLikeRepository(tx)
		exists, err := repo.Exists(ctx, userID, tweetID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.ErrAlreadyLiked
		}
		return repo.Create(ctx, userID, tweetID)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = apperr.ErrAlreadyLiked
	}
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, tweetID)
	return nil
}

func (s *relationshipService) Unlike(ctx context.Context, userID, tweetID int64) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet == nil {
		return apperr.ErrTweetNotFound
	}
	deleted, err := s.likeRepo.Delete(ctx, userID, tweetID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.ErrLikeNotFound
	}
	s.cache.Invalidate(ctx, tweetID)
	return nil
}

func (s *relationshipService) CountLikes(ctx context.Context, tweetID int64) (int64, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return 0, err
	}
	if tweet == nil {
		return 0, apperr.ErrTweetNotFound
	}
	if n, ok := s.cache.Get(ctx, tweetID); ok {
		return n, nil
	}
	n, err := s.likeRepo.CountByTweet(ctx, tweetID)
	if err != nil {
		return 0, err
	}
	s.cache.Set(ctx, tweetID, n)
	return n, nil
}
