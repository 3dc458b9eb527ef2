package repositories

import (
	"context"

	"github.com/anonto42/nano-chirp/backend/internal/models"
	"github.com/anonto42/nano-chirp/backend/pkg/pagination"
	"gorm.io/gorm"
)

// ListTweetsOptions selects one window of the feed. UserID restricts the
// result to a single author, FollowedBy to authors the given user follows;
// both zero means the global feed. The two filters compose with the cursor
// without changing the ordering contract.
type ListTweetsOptions struct {
	Limit      int
	Cursor     *pagination.Cursor
	UserID     uint // only tweets owned by this user
	FollowedBy uint // only tweets whose owner is followed by this user
}

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	CreateTweet(ctx context.Context, tweet *models.Tweet) error
	GetTweetByID(ctx context.Context, id uint) (*models.Tweet, error)
	ListTweets(ctx context.Context, opts ListTweetsOptions) ([]models.Tweet, error)
	CountTweetsByUserID(ctx context.Context, userID uint) (int64, error)
}

// PostgresTweetRepository implements TweetRepository for PostgreSQL
type PostgresTweetRepository struct {
	db *gorm.DB
}

// NewPostgresTweetRepository creates a new PostgresTweetRepository
func NewPostgresTweetRepository(db *gorm.DB) *PostgresTweetRepository {
	return &PostgresTweetRepository{db: db}
}

// CreateTweet creates a new tweet in PostgreSQL
func (r *PostgresTweetRepository) CreateTweet(ctx context.Context, tweet *models.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

// GetTweetByID retrieves a tweet by ID from PostgreSQL
func (r *PostgresTweetRepository) GetTweetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, id).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// ListTweets retrieves one window of tweets ordered by (created_at DESC,
// id DESC). The cursor predicate is inclusive: the cursor row itself is
// the first row of the window, and the composite comparison keeps the
// boundary unambiguous even when several tweets share a timestamp.
func (r *PostgresTweetRepository) ListTweets(ctx context.Context, opts ListTweetsOptions) ([]models.Tweet, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(opts.Limit)

	if opts.UserID != 0 {
		q = q.Where("user_id = ?", opts.UserID)
	}

	if opts.FollowedBy != 0 {
		q = q.Where("user_id IN (?)",
			r.db.Table("follows").Select("following_id").Where("follower_id = ?", opts.FollowedBy),
		)
	}

	if opts.Cursor != nil {
		q = q.Where("(created_at < ? OR (created_at = ? AND id <= ?))",
			opts.Cursor.CreatedAt, opts.Cursor.CreatedAt, opts.Cursor.ID)
	}

	var tweets []models.Tweet
	if err := q.Find(&tweets).Error; err != nil {
		return nil, err
	}
	return tweets, nil
}

// CountTweetsByUserID retrieves the number of tweets owned by a user
func (r *PostgresTweetRepository) CountTweetsByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Tweet{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
