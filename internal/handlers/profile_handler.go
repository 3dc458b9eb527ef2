package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/nano-chirp/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ProfileHandler handles public profile HTTP requests
type ProfileHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	tweetRepository  repositories.TweetRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, tweetRepo repositories.TweetRepository) *ProfileHandler {
	return &ProfileHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
		tweetRepository:  tweetRepo,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/:id/profile", h.GetProfile)
}

// Profile is the public projection of a user with follower aggregates
type Profile struct {
	Name           string `json:"name"`
	Image          string `json:"image,omitempty"`
	FollowersCount int64  `json:"followers_count"`
	FollowsCount   int64  `json:"follows_count"`
	TweetsCount    int64  `json:"tweets_count"`
	IsFollowing    bool   `json:"is_following"`
}

// GetProfile retrieves a user's public profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ctx := c.Request().Context()

	followersCount, err := h.followRepository.GetFollowersCount(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	followsCount, err := h.followRepository.GetFollowingCount(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	tweetsCount, err := h.tweetRepository.CountTweetsByUserID(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	isFollowing := false
	if currentUserID != 0 && currentUserID != user.ID {
		isFollowing, err = h.followRepository.IsFollowing(ctx, currentUserID, user.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": Profile{
			Name:           user.Name,
			Image:          user.Image,
			FollowersCount: followersCount,
			FollowsCount:   followsCount,
			TweetsCount:    tweetsCount,
			IsFollowing:    isFollowing,
		},
	})
}
