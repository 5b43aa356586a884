package model

import "time"

// Tweet 短文本内容主体
type Tweet struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  int64     `json:"author_id" gorm:"index:idx_tweet_author;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Tweet) TableName() string { return "tweets" }
