package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/nano-chirp/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	ToggleLike(ctx context.Context, userID, tweetID uint) (added bool, likeCount int, err error)
	GetLikedTweetIDs(ctx context.Context, userID uint, tweetIDs []uint) (map[uint]bool, error)
	GetLikesCountByTweetID(ctx context.Context, tweetID uint) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// ToggleLike flips the user's like on a tweet and returns the resulting
// state plus the fresh like count. The existence check, the like row
// mutation and the counter update run in one transaction; the unique
// (user_id, tweet_id) index is the backstop when two toggles race, so the
// count can never drift.
func (r *PostgresLikeRepository) ToggleLike(ctx context.Context, userID, tweetID uint) (bool, int, error) {
	var added bool
	var likeCount int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var like models.Like
		err := tx.Where("user_id = ? AND tweet_id = ?", userID, tweetID).First(&like).Error

		switch {
		case err == nil:
			// Present: remove it and step the counter down, never below zero.
			// A zero-row delete means a concurrent unlike got there first;
			// the counter was already stepped once and must not move again.
			res := tx.Delete(&like)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				if err := tx.Model(&models.Tweet{}).
					Where("id = ?", tweetID).
					UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).
					Error; err != nil {
					return err
				}
			}
			added = false

		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Like{UserID: userID, TweetID: tweetID}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Tweet{}).
				Where("id = ?", tweetID).
				UpdateColumn("like_count", gorm.Expr("like_count + 1")).
				Error; err != nil {
				return err
			}
			added = true

		default:
			return err
		}

		var tweet models.Tweet
		if err := tx.Select("id", "like_count").First(&tweet, tweetID).Error; err != nil {
			return err
		}
		likeCount = tweet.LikeCount
		return nil
	})

	return added, likeCount, err
}

// GetLikedTweetIDs returns, for one query, which of the given tweets the
// user has liked. Used to annotate a feed page without an N+1 lookup.
func (r *PostgresLikeRepository) GetLikedTweetIDs(ctx context.Context, userID uint, tweetIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool)
	if len(tweetIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND tweet_id IN ?", userID, tweetIDs).
		Pluck("tweet_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// GetLikesCountByTweetID retrieves the count of likes for a specific tweet
func (r *PostgresLikeRepository) GetLikesCountByTweetID(ctx context.Context, tweetID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("tweet_id = ?", tweetID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
