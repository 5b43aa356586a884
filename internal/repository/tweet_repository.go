package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

type TweetRepository interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	GetByID(ctx context.Context, id int64) (*model.Tweet, error)
	ListAll(ctx context.Context) ([]*model.Tweet, error)
	ListByAuthors(ctx context.Context, authorIDs []int64) ([]*model.Tweet, error)
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository { return &tweetRepository{db: db} }

func (r *tweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

func (r *tweetRepository) GetByID(ctx context.Context, id int64) (*model.Tweet, error) {
	var t model.Tweet
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// ListAll returns newest first; ids are monotonic so id desc is creation order.
func (r *tweetRepository) ListAll(ctx context.Context) ([]*model.Tweet, error) {
	var res []*model.Tweet
	err := r.db.WithContext(ctx).Order("id DESC").Find(&res).Error
	return res, err
}

func (r *tweetRepository) ListByAuthors(ctx context.Context, authorIDs []int64) ([]*model.Tweet, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var res []*model.Tweet
	err := r.db.WithContext(ctx).
		Where("author_id IN ?", authorIDs).
		Order("id DESC").
		Find(&res).Error
	return res, err
}
