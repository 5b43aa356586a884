package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

type FollowRepository interface {
	Create(ctx context.Context, followerID, followingID int64) error
	Delete(ctx context.Context, followerID, followingID int64) (bool, error)
	Exists(ctx context.Context, followerID, followingID int64) (bool, error)
	ListFollowing(ctx context.Context, followerID int64) ([]*model.Follow, error)
	ListFollowers(ctx context.Context, followingID int64) ([]*model.Follow, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

// Create inserts the edge as-is; a duplicate pair hits idx_follow_pair and
// comes back as gorm.ErrDuplicatedKey for the service to map.
func (r *followRepository) Create(ctx context.Context, followerID, followingID int64) error {
	f := &model.Follow{FollowerID: followerID, FollowingID: followingID}
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{})
	return res.RowsAffected > 0, res.Error
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ListFollowing returns edges in insertion order (id ascending).
func (r *followRepository) ListFollowing(ctx context.Context, followerID int64) ([]*model.Follow, error) {
	var res []*model.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ?", followerID).
		Order("id").
		Find(&res).Error
	return res, err
}

func (r *followRepository) ListFollowers(ctx context.Context, followingID int64) ([]*model.Follow, error) {
	var res []*model.Follow
	err := r.db.WithContext(ctx).
		Where("following_id = ?", followingID).
		Order("id").
		Find(&res).Error
	return res, err
}
