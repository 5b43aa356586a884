package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

type LikeRepository interface {
	Create(ctx context.Context, userID, tweetID int64) error
	Delete(ctx context.Context, userID, tweetID int64) (bool, error)
	Exists(ctx context.Context, userID, tweetID int64) (bool, error)
	CountByTweet(ctx context.Context, tweetID int64) (int64, error)
	ListByTweet(ctx context.Context, tweetID int64) ([]*model.Like, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

// Create relies on idx_like_pair: a concurrent duplicate surfaces as
// gorm.ErrDuplicatedKey instead of a second row.
func (r *likeRepository) Create(ctx context.Context, userID, tweetID int64) error {
	l := &model.Like{UserID: userID, TweetID: tweetID}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *likeRepository) Delete(ctx context.Context, userID, tweetID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&model.Like{})
	return res.RowsAffected > 0, res.Error
}

func (r *likeRepository) Exists(ctx context.Context, userID, tweetID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *likeRepository) CountByTweet(ctx context.Context, tweetID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("tweet_id = ?", tweetID).
		Count(&cnt).Error
	return cnt, err
}

func (r *likeRepository) ListByTweet(ctx context.Context, tweetID int64) ([]*model.Like, error) {
	var res []*model.Like
	err := r.db.WithContext(ctx).
		Where("tweet_id = ?", tweetID).
		Order("id").
		Find(&res).Error
	return res, err
}
