package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/pkg/apperr"
)

type TweetService interface {
	Create(ctx context.Context, authorID int64, content string, mediaIDs []int64) (*model.Tweet, error)
	Delete(ctx context.Context, requesterID, tweetID int64) error
	ListAll(ctx context.Context) ([]*model.Tweet, error)
}

type tweetService struct {
	db        *gorm.DB
	tweetRepo repository.TweetRepository
	mediaSvc  MediaService
	cache     *LikeCache
}

func NewTweetService(db *gorm.DB, tweetRepo repository.TweetRepository, mediaSvc MediaService, cache *LikeCache) TweetService {
	return &tweetService{db: db, tweetRepo: tweetRepo, mediaSvc: mediaSvc, cache: cache}
}

// Create persists the tweet, then attaches each referenced media record.
// Attachment is best-effort: a bad id is logged inside the media service and
// never fails the creation.
func (s *tweetService) Create(ctx context.Context, authorID int64, content string, mediaIDs []int64) (*model.Tweet, error) {
	tweet := &model.Tweet{Content: content, AuthorID: authorID}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	for _, id := range mediaIDs {
		if err := s.mediaSvc.Attach(ctx, id, tweet.ID); err != nil {
			return nil, err
		}
	}
	return tweet, nil
}

// Delete removes the tweet in one transaction: its likes go with it and its
// media are detached (tweet_id cleared, records kept). Partial cascade must
// never be visible to other operations.
func (s *tweetService) Delete(ctx context.Context, requesterID, tweetID int64) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet == nil {
		return apperr.ErrTweetNotFound
	}
	if tweet.AuthorID != requesterID {
		return apperr.ErrNotTweetAuthor
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", tweetID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Media{}).
			Where("tweet_id = ?", tweetID).
			Update("tweet_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tweet{}, "id = ?", tweetID).Error
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, tweetID)
	return nil
}

func (s *tweetService) ListAll(ctx context.Context) ([]*model.Tweet, error) {
	return s.tweetRepo.ListAll(ctx)
}
