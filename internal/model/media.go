package model

import "time"

// Media is an uploaded file's metadata. The bytes live in the blob store under
// StoragePath; TweetID stays nil until the media is bound to a tweet and goes
// back to nil when that tweet is deleted.
type Media struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	StoragePath string `json:"storage_path" gorm:"type:varchar(255);not null"`
	TweetID     *int64 `json:"tweet_id" gorm:"index:idx_media_tweet"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Media) TableName() string { return "medias" }
