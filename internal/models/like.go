package models

import "time"

// Like represents a like on a tweet. At most one row exists per (user, tweet) pair.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_tweet"`
	TweetID   uint      `json:"tweet_id" gorm:"index;uniqueIndex:idx_user_tweet"`
	CreatedAt time.Time `json:"created_at"`
}
