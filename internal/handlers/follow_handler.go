package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/nano-chirp/backend/internal/models"
	"github.com/anonto42/nano-chirp/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
}

// ToggleFollow flips the current user's follow edge to the target user
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if currentUserID == uint(targetID) {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	// Verify target user exists
	if _, err := h.userRepository.GetUserByID(c.Request().Context(), uint(targetID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	added, err := h.followRepository.ToggleFollow(c.Request().Context(), currentUserID, uint(targetID))
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent toggle won the race; the client can retry
			return echo.NewHTTPError(http.StatusConflict, "Follow toggled concurrently, retry")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Notify the target when a follow is added
	if added && h.notificationRepository != nil {
		actor, err := h.userRepository.GetUserByID(c.Request().Context(), currentUserID)
		if err == nil {
			notif := &models.Notification{
				Type:        "follow",
				ActorID:     currentUserID,
				RecipientID: uint(targetID),
				TargetID:    currentUserID,
				Message:     actor.Name + " started following you",
			}
			_ = h.notificationRepository.CreateNotification(c.Request().Context(), notif)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"added_follow": added},
	})
}
