package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vartaverse/varta/backend/internal/auth"
	"github.com/vartaverse/varta/backend/internal/config"
	"github.com/vartaverse/varta/backend/internal/models"
	"github.com/vartaverse/varta/backend/internal/telemetry"
	"github.com/vartaverse/varta/backend/internal/util"
	"gorm.io/gorm"
)

// MockUserID acts for requests that carry no token
const MockUserID uint = 1

// Handlers contains all HTTP handlers for the dev server
type Handlers struct {
	db     *gorm.DB
	auth   auth.AuthServiceInterface
	cfg    *config.Config
	events *telemetry.Events
}

// NewHandlers creates a new handlers instance
func NewHandlers(db *gorm.DB, authService auth.AuthServiceInterface, cfg *config.Config) *Handlers {
	return &Handlers{
		db:     db,
		auth:   authService,
		cfg:    cfg,
		events: telemetry.NewEvents(),
	}
}

// currentUserID returns the token user, or MockUserID for anonymous requests
func currentUserID(c *gin.Context) uint {
	if raw := c.GetString("user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil && id > 0 {
			return uint(id)
		}
	}
	return MockUserID
}

// loadPost resolves the :id path parameter. It writes the error response and returns nil on failure.
func (h *Handlers) loadPost(c *gin.Context) *models.Post {
	id, ok := util.ParseID(c.Param("id"))
	if !ok {
		util.RespondBadRequest(c, "Invalid post ID")
		return nil
	}

	var post models.Post
	if err := h.db.WithContext(c.Request.Context()).First(&post, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.RespondNotFound(c, "Post")
		} else {
			util.RespondInternalError(c, "Failed to load post", err)
		}
		return nil
	}
	return &post
}
