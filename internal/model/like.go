package model

import "time"

// Like 点赞关系
type Like struct {
	ID      int64 `gorm:"primaryKey;autoIncrement"`
	UserID  int64 `gorm:"index:idx_like_user;index:idx_like_pair,unique;not null"`
	TweetID int64 `gorm:"index:idx_like_tweet;index:idx_like_pair,unique;not null"`
	// 复合唯一键，避免重复点赞
	// idx_like_pair = (user_id, tweet_id)
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Like) TableName() string { return "likes" }
