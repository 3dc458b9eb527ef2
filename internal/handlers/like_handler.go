package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/nano-chirp/backend/internal/cache"
	"github.com/anonto42/nano-chirp/backend/internal/models"
	"github.com/anonto42/nano-chirp/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository         repositories.LikeRepository
	tweetRepository        repositories.TweetRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	likeCache              *cache.LikeCache
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	likeRepo repositories.LikeRepository,
	tweetRepo repositories.TweetRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	likeCache *cache.LikeCache,
) *LikeHandler {
	return &LikeHandler{
		likeRepository:         likeRepo,
		tweetRepository:        tweetRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		likeCache:              likeCache,
	}
}

// RegisterLikeRoutes registers like-related routes. Toggling requires
// authentication; the count is public.
func (h *LikeHandler) RegisterLikeRoutes(api, public *echo.Group) {
	api.POST("/tweets/:id/like", h.ToggleLike)
	public.GET("/tweets/:id/likes/count", h.GetLikesCount)
}

// ToggleLike flips the current user's like on a tweet
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	tweetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid tweet ID")
	}

	// Verify tweet exists
	tweet, err := h.tweetRepository.GetTweetByID(c.Request().Context(), uint(tweetID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Tweet not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	added, likeCount, err := h.likeRepository.ToggleLike(c.Request().Context(), currentUserID, uint(tweetID))
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent toggle won the race; the client can retry
			return echo.NewHTTPError(http.StatusConflict, "Like toggled concurrently, retry")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Best-effort cache upkeep; readers fall back to the database
	if added {
		_ = h.likeCache.AddLike(c.Request().Context(), currentUserID, uint(tweetID))
	} else {
		_ = h.likeCache.RemoveLike(c.Request().Context(), currentUserID, uint(tweetID))
	}
	_ = h.likeCache.SetLikeCount(c.Request().Context(), uint(tweetID), int64(likeCount))

	// Notify the tweet owner when a like is added
	if added && h.notificationRepository != nil && tweet.UserID != currentUserID {
		actor, err := h.userRepository.GetUserByID(c.Request().Context(), currentUserID)
		if err == nil {
			notif := &models.Notification{
				Type:        "like",
				ActorID:     currentUserID,
				RecipientID: tweet.UserID,
				TargetID:    uint(tweetID),
				Message:     actor.Name + " liked your tweet",
			}
			_ = h.notificationRepository.CreateNotification(c.Request().Context(), notif)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"added_like": added, "like_count": likeCount},
	})
}

// GetLikesCount retrieves the number of likes for a tweet, cache first
func (h *LikeHandler) GetLikesCount(c echo.Context) error {
	tweetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid tweet ID")
	}

	if count, ok, err := h.likeCache.GetLikeCountCached(c.Request().Context(), uint(tweetID)); err == nil && ok {
		return c.JSON(http.StatusOK, echo.Map{"tweet_id": tweetID, "likes_count": count})
	}

	// Verify tweet exists before reporting a count of zero
	if _, err := h.tweetRepository.GetTweetByID(c.Request().Context(), uint(tweetID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Tweet not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count, err := h.likeRepository.GetLikesCountByTweetID(c.Request().Context(), uint(tweetID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Lazy backfill for the next reader
	_ = h.likeCache.SetLikeCount(c.Request().Context(), uint(tweetID), count)

	return c.JSON(http.StatusOK, echo.Map{"tweet_id": tweetID, "likes_count": count})
}
