package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/vartaverse/varta/backend/internal/dto"
	"github.com/vartaverse/varta/backend/internal/metrics"
	"github.com/vartaverse/varta/backend/internal/models"
	"github.com/vartaverse/varta/backend/internal/telemetry"
	"github.com/vartaverse/varta/backend/internal/util"
	"gorm.io/gorm"
)

func parseUserParam(c *gin.Context) (uint, bool) {
	id, ok := util.ParseID(c.Param("id"))
	if !ok {
		util.RespondBadRequest(c, "Invalid user ID")
	}
	return id, ok
}

// GetUser returns a user profile
// GET /users/:id
func (h *Handlers) GetUser(c *gin.Context) {
	id, ok := parseUserParam(c)
	if !ok {
		return
	}

	user, err := h.auth.FindUser(id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.ToUserResponse(user))
	case errors.Is(err, gorm.ErrRecordNotFound):
		if c.GetString("user_id") == dto.FormatID(id) {
			c.JSON(http.StatusOK, dto.UserResponse{
				ID:    dto.FormatID(id),
				Email: c.GetString("user_email"),
				Name:  c.GetString("user_name"),
				Role:  "user",
			})
			return
		}
		util.RespondNotFound(c, "User")
	default:
		util.RespondInternalError(c, "Failed to load user", err)
	}
}

// FollowUser makes the caller follow the user. Following twice is a no-op.
// POST /users/follow/:id
func (h *Handlers) FollowUser(c *gin.Context) {
	targetID, ok := parseUserParam(c)
	if !ok {
		return
	}
	userID := currentUserID(c)
	if targetID == userID {
		util.RespondBadRequest(c, "You cannot follow yourself")
		return
	}

	ctx, span := h.events.TraceInteraction(c.Request.Context(), "follow", dto.FormatID(userID), "user", dto.FormatID(targetID))
	var follow models.Follow
	err := h.db.WithContext(ctx).
		Where(models.Follow{FollowerID: userID, FollowingID: targetID}).
		FirstOrCreate(&follow).Error
	telemetry.EndSpan(span, err)
	if err != nil {
		util.RespondInternalError(c, "Failed to follow user", err)
		return
	}

	metrics.RecordInteraction("follow")
	c.JSON(http.StatusOK, dto.ToFollowResponse(&follow))
}

// UnfollowUser removes the caller's follow. Unfollowing a user not followed is a no-op.
// POST /users/unfollow/:id
func (h *Handlers) UnfollowUser(c *gin.Context) {
	targetID, ok := parseUserParam(c)
	if !ok {
		return
	}
	userID := currentUserID(c)

	ctx, span := h.events.TraceInteraction(c.Request.Context(), "unfollow", dto.FormatID(userID), "user", dto.FormatID(targetID))
	err := h.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", userID, targetID).
		Delete(&models.Follow{}).Error
	telemetry.EndSpan(span, err)
	if err != nil {
		util.RespondInternalError(c, "Failed to unfollow user", err)
		return
	}

	metrics.RecordInteraction("unfollow")
	c.JSON(http.StatusOK, gin.H{"message": "User unfollowed"})
}

// GetFollowing lists the relationships where the user is the follower
// GET /users/following/:id
func (h *Handlers) GetFollowing(c *gin.Context) {
	h.listFollows(c, "follower_id = ?")
}

// GetFollowers lists the relationships where the user is followed
// GET /users/followers/:id
func (h *Handlers) GetFollowers(c *gin.Context) {
	h.listFollows(c, "following_id = ?")
}

func (h *Handlers) listFollows(c *gin.Context, condition string) {
	id, ok := parseUserParam(c)
	if !ok {
		return
	}

	var follows []models.Follow
	if err := h.db.WithContext(c.Request.Context()).
		Where(condition, id).
		Order("created_at ASC, id ASC").
		Find(&follows).Error; err != nil {
		util.RespondInternalError(c, "Failed to load follows", err)
		return
	}

	c.JSON(http.StatusOK, lo.Map(follows, func(f models.Follow, _ int) *dto.FollowResponse {
		return dto.ToFollowResponse(&f)
	}))
}
