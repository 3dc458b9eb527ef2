package handlers

import (
	"net/http"
	"testing"

	"github.com/anonto42/nano-chirp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLikeHandlerForTest(likeRepo *mockLikeRepository, tweetRepo *mockTweetRepository, userRepo *mockUserRepository, notifRepo *mockNotificationRepository) *LikeHandler {
	return NewLikeHandler(likeRepo, tweetRepo, userRepo, notifRepo, nil)
}

func toggleLikeRequest(t *testing.T, h *LikeHandler, tweetID string, viewerID uint) (int, map[string]interface{}) {
	t.Helper()
	c, rec := newTestContext(http.MethodPost, "/api/v1/tweets/"+tweetID+"/like", "")
	c.SetParamNames("id")
	c.SetParamValues(tweetID)
	if viewerID != 0 {
		asAuthenticated(c, viewerID)
	}

	err := h.ToggleLike(c)
	if err != nil {
		return httpErrorCode(t, err), nil
	}

	var body struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	decodeBody(t, rec, &body)
	require.True(t, body.Success)
	return rec.Code, body.Data
}

func TestToggleLikeAddsThenRemoves(t *testing.T) {
	likeRepo := new(mockLikeRepository)
	tweetRepo := new(mockTweetRepository)
	userRepo := new(mockUserRepository)
	notifRepo := new(mockNotificationRepository)

	tweet := &models.Tweet{ID: 9, UserID: 2, Content: "hello"}
	tweetRepo.On("GetTweetByID", mock.Anything, uint(9)).Return(tweet, nil)
	userRepo.On("GetUserByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Name: "alice"}, nil)
	notifRepo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)
	likeRepo.On("ToggleLike", mock.Anything, uint(1), uint(9)).Return(true, 5, nil).Once()
	likeRepo.On("ToggleLike", mock.Anything, uint(1), uint(9)).Return(false, 4, nil).Once()

	h := newLikeHandlerForTest(likeRepo, tweetRepo, userRepo, notifRepo)

	code, data := toggleLikeRequest(t, h, "9", 1)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, data["added_like"])
	assert.Equal(t, float64(5), data["like_count"])

	code, data = toggleLikeRequest(t, h, "9", 1)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, data["added_like"])
	assert.Equal(t, float64(4), data["like_count"])

	likeRepo.AssertExpectations(t)
	notifRepo.AssertNumberOfCalls(t, "CreateNotification", 1)
}

func TestToggleLikeRequiresAuthentication(t *testing.T) {
	h := newLikeHandlerForTest(new(mockLikeRepository), new(mockTweetRepository), new(mockUserRepository), new(mockNotificationRepository))

	code, _ := toggleLikeRequest(t, h, "9", 0)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestToggleLikeUnknownTweet(t *testing.T) {
	tweetRepo := new(mockTweetRepository)
	tweetRepo.On("GetTweetByID", mock.Anything, uint(77)).Return(nil, gorm.ErrRecordNotFound)

	h := newLikeHandlerForTest(new(mockLikeRepository), tweetRepo, new(mockUserRepository), new(mockNotificationRepository))

	code, _ := toggleLikeRequest(t, h, "77", 1)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestToggleLikeInvalidTweetID(t *testing.T) {
	h := newLikeHandlerForTest(new(mockLikeRepository), new(mockTweetRepository), new(mockUserRepository), new(mockNotificationRepository))

	code, _ := toggleLikeRequest(t, h, "abc", 1)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestToggleLikeConcurrentConflict(t *testing.T) {
	likeRepo := new(mockLikeRepository)
	tweetRepo := new(mockTweetRepository)
	tweetRepo.On("GetTweetByID", mock.Anything, uint(9)).Return(&models.Tweet{ID: 9, UserID: 2}, nil)
	likeRepo.On("ToggleLike", mock.Anything, uint(1), uint(9)).Return(false, 0, gorm.ErrDuplicatedKey)

	h := newLikeHandlerForTest(likeRepo, tweetRepo, new(mockUserRepository), new(mockNotificationRepository))

	code, _ := toggleLikeRequest(t, h, "9", 1)
	assert.Equal(t, http.StatusConflict, code)
}

func TestToggleLikeOwnTweetSkipsNotification(t *testing.T) {
	likeRepo := new(mockLikeRepository)
	tweetRepo := new(mockTweetRepository)
	notifRepo := new(mockNotificationRepository)
	tweetRepo.On("GetTweetByID", mock.Anything, uint(9)).Return(&models.Tweet{ID: 9, UserID: 1}, nil)
	likeRepo.On("ToggleLike", mock.Anything, uint(1), uint(9)).Return(true, 1, nil)

	h := newLikeHandlerForTest(likeRepo, tweetRepo, new(mockUserRepository), notifRepo)

	code, data := toggleLikeRequest(t, h, "9", 1)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, data["added_like"])
	notifRepo.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
}

func TestGetLikesCountFallsBackToDatabase(t *testing.T) {
	likeRepo := new(mockLikeRepository)
	tweetRepo := new(mockTweetRepository)
	tweetRepo.On("GetTweetByID", mock.Anything, uint(9)).Return(&models.Tweet{ID: 9}, nil)
	likeRepo.On("GetLikesCountByTweetID", mock.Anything, uint(9)).Return(int64(12), nil)

	h := newLikeHandlerForTest(likeRepo, tweetRepo, new(mockUserRepository), new(mockNotificationRepository))

	c, rec := newTestContext(http.MethodGet, "/api/v1/tweets/9/likes/count", "")
	c.SetParamNames("id")
	c.SetParamValues("9")
	require.NoError(t, h.GetLikesCount(c))

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, float64(12), body["likes_count"])
}

func TestGetLikesCountUnknownTweet(t *testing.T) {
	tweetRepo := new(mockTweetRepository)
	tweetRepo.On("GetTweetByID", mock.Anything, uint(77)).Return(nil, gorm.ErrRecordNotFound)

	h := newLikeHandlerForTest(new(mockLikeRepository), tweetRepo, new(mockUserRepository), new(mockNotificationRepository))

	c, _ := newTestContext(http.MethodGet, "/api/v1/tweets/77/likes/count", "")
	c.SetParamNames("id")
	c.SetParamValues("77")
	err := h.GetLikesCount(c)

	assert.Equal(t, http.StatusNotFound, httpErrorCode(t, err))
}
