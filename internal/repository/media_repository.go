package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

type MediaRepository interface {
	Create(ctx context.Context, media *model.Media) error
	GetByID(ctx context.Context, id int64) (*model.Media, error)
	Attach(ctx context.Context, mediaID, tweetID int64) error
	ListByTweet(ctx context.Context, tweetID int64) ([]*model.Media, error)
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository { return &mediaRepository{db: db} }

func (r *mediaRepository) Create(ctx context.Context, media *model.Media) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *mediaRepository) GetByID(ctx context.Context, id int64) (*model.Media, error) {
	var m model.Media
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *mediaRepository) Attach(ctx context.Context, mediaID, tweetID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Media{}).
		Where("id = ?", mediaID).
		Update("tweet_id", tweetID).Error
}

func (r *mediaRepository) ListByTweet(ctx context.Context, tweetID int64) ([]*model.Media, error) {
	var res []*model.Media
	err := r.db.WithContext(ctx).
		Where("tweet_id = ?", tweetID).
		Order("id").
		Find(&res).Error
	return res, err
}
