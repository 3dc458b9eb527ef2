package handlers

import (
	"net/http"
	"strings"

	"github.com/anonto42/nano-chirp/backend/internal/models"
	"github.com/anonto42/nano-chirp/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// TweetHandler handles HTTP requests related to tweets
type TweetHandler struct {
	tweetRepository repositories.TweetRepository
	userRepository  repositories.UserRepository
}

// NewTweetHandler creates a new TweetHandler
func NewTweetHandler(tweetRepo repositories.TweetRepository, userRepo repositories.UserRepository) *TweetHandler {
	return &TweetHandler{
		tweetRepository: tweetRepo,
		userRepository:  userRepo,
	}
}

// RegisterTweetRoutes registers tweet-related routes
func (h *TweetHandler) RegisterTweetRoutes(g *echo.Group) {
	g.POST("/tweets", h.CreateTweet)
}

// CreateTweet handles posting a new tweet
func (h *TweetHandler) CreateTweet(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateTweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Tweet content must not be empty")
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	tweet := &models.Tweet{
		UserID:  currentUserID,
		Content: content,
	}
	if err := h.tweetRepository.CreateTweet(c.Request().Context(), tweet); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data": EnrichedTweet{
			ID:        tweet.ID,
			Content:   tweet.Content,
			CreatedAt: tweet.CreatedAt.UTC().Format(timeFormat),
			LikeCount: 0,
			LikedByMe: false,
			User:      user.ToCompact(),
		},
	})
}
