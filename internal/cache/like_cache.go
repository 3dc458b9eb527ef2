// Package cache provides a redis-backed cache for like state. It sits
// beside the relational store, never in front of it: writers update it
// best-effort after a committed toggle and readers fall back to PostgreSQL
// on any miss or error. A nil *LikeCache disables the layer entirely.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	likeSetTTL       = 24 * time.Hour
	likeCntTTL       = 24 * time.Hour
	likeSetKeyPrefix = "like:set:tweet" // set of user IDs that liked a tweet
	likeCntKeyPrefix = "like:cnt:tweet" // cached like count per tweet
)

// LikeCache caches per-tweet liked-user sets and like counts
type LikeCache struct {
	client *redis.Client
}

// NewLikeCache creates a LikeCache. A nil client yields a disabled cache
// whose methods are all no-ops.
func NewLikeCache(client *redis.Client) *LikeCache {
	if client == nil {
		return nil
	}
	return &LikeCache{client: client}
}

func (c *LikeCache) enabled() bool {
	return c != nil && c.client != nil
}

func likeSetKey(tweetID uint) string {
	return fmt.Sprintf("%s:%d", likeSetKeyPrefix, tweetID)
}

func likeCntKey(tweetID uint) string {
	return fmt.Sprintf("%s:%d", likeCntKeyPrefix, tweetID)
}

// AddLike records a committed like in the cache
func (c *LikeCache) AddLike(ctx context.Context, userID, tweetID uint) error {
	if !c.enabled() {
		return nil
	}
	k := likeSetKey(tweetID)
	if err := c.client.SAdd(ctx, k, userID).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, k, likeSetTTL).Err()
}

// RemoveLike records a committed unlike in the cache
func (c *LikeCache) RemoveLike(ctx context.Context, userID, tweetID uint) error {
	if !c.enabled() {
		return nil
	}
	return c.client.SRem(ctx, likeSetKey(tweetID), userID).Err()
}

// GetLikeCountCached returns the cached like count and whether it was present
func (c *LikeCache) GetLikeCountCached(ctx context.Context, tweetID uint) (int64, bool, error) {
	if !c.enabled() {
		return 0, false, nil
	}
	val, err := c.client.Get(ctx, likeCntKey(tweetID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

// SetLikeCount backfills the like count after a database read or toggle
func (c *LikeCache) SetLikeCount(ctx context.Context, tweetID uint, count int64) error {
	if !c.enabled() {
		return nil
	}
	return c.client.Set(ctx, likeCntKey(tweetID), count, likeCntTTL).Err()
}
