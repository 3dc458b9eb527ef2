package models

import "time"

// Tweet represents a short text message posted by a user
type Tweet struct {
	ID        uint      `json:"id" gorm:"primaryKey;index:idx_tweets_created_id,priority:2,sort:desc"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Content   string    `json:"content" gorm:"type:text"`
	LikeCount int       `json:"like_count"` // Maintained transactionally by the like toggle
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_tweets_created_id,priority:1,sort:desc"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// CreateTweetRequest defines the request body for posting a new tweet
type CreateTweetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}
