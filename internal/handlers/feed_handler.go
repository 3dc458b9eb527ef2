package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/anonto42/nano-chirp/backend/internal/models"
	"github.com/anonto42/nano-chirp/backend/internal/repositories"
	"github.com/anonto42/nano-chirp/backend/pkg/pagination"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	tweetRepository repositories.TweetRepository
	likeRepository  repositories.LikeRepository
	cursorCodec     *pagination.Codec
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	tweetRepo repositories.TweetRepository,
	likeRepo repositories.LikeRepository,
	cursorCodec *pagination.Codec,
) *FeedHandler {
	return &FeedHandler{
		tweetRepository: tweetRepo,
		likeRepository:  likeRepo,
		cursorCodec:     cursorCodec,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/users/:id/tweets", h.GetUserTweets)
}

// EnrichedTweet is a tweet annotated with its author and the viewer's like state
type EnrichedTweet struct {
	ID        uint               `json:"id"`
	Content   string             `json:"content"`
	CreatedAt string             `json:"created_at"`
	LikeCount int                `json:"like_count"`
	LikedByMe bool               `json:"liked_by_me"`
	User      models.UserCompact `json:"user"`
}

type feedPage struct {
	Tweets     []EnrichedTweet `json:"tweets"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// GetFeed returns one page of the global or following-only feed
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	scope := c.QueryParam("scope")
	if scope == "" {
		scope = "all"
	}
	if scope != "all" && scope != "following" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid scope")
	}

	opts := repositories.ListTweetsOptions{}
	if scope == "following" {
		// Anonymous viewers follow nobody: an empty page, never the
		// unfiltered global feed.
		if currentUserID == 0 {
			return c.JSON(http.StatusOK, echo.Map{
				"success": true,
				"data":    feedPage{Tweets: []EnrichedTweet{}},
			})
		}
		opts.FollowedBy = currentUserID
	}

	return h.fetchPage(c, opts, currentUserID)
}

// GetUserTweets returns one page of a single user's tweets (profile feed)
func (h *FeedHandler) GetUserTweets(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	return h.fetchPage(c, repositories.ListTweetsOptions{UserID: uint(userID)}, currentUserID)
}

// fetchPage runs one cursor window against storage and annotates the result
func (h *FeedHandler) fetchPage(c echo.Context, opts repositories.ListTweetsOptions, currentUserID uint) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	if token := c.QueryParam("cursor"); token != "" {
		cursor, err := h.cursorCodec.Decode(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		opts.Cursor = &cursor
	}

	// Fetch one row beyond the page; the extra row becomes the next cursor
	opts.Limit = limit + 1
	tweets, err := h.tweetRepository.ListTweets(c.Request().Context(), opts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	tweets, nextCursor := pagination.Window(tweets, limit, func(t models.Tweet) pagination.Cursor {
		return pagination.Cursor{ID: t.ID, CreatedAt: t.CreatedAt}
	})

	// Check liked status for current user in one batched lookup
	likedMap := make(map[uint]bool)
	if currentUserID != 0 && len(tweets) > 0 {
		tweetIDs := make([]uint, len(tweets))
		for i, t := range tweets {
			tweetIDs[i] = t.ID
		}
		likedMap, err = h.likeRepository.GetLikedTweetIDs(c.Request().Context(), currentUserID, tweetIDs)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	page := feedPage{Tweets: make([]EnrichedTweet, len(tweets))}
	for i, t := range tweets {
		page.Tweets[i] = EnrichedTweet{
			ID:        t.ID,
			Content:   t.Content,
			CreatedAt: t.CreatedAt.UTC().Format(timeFormat),
			LikeCount: t.LikeCount,
			LikedByMe: likedMap[t.ID],
			User:      t.User.ToCompact(),
		}
	}
	if nextCursor != nil {
		page.NextCursor = h.cursorCodec.Encode(*nextCursor)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": page})
}

// timeFormat is the wire format for tweet timestamps
const timeFormat = time.RFC3339Nano
