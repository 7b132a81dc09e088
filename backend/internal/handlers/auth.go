package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vartaverse/varta/backend/internal/auth"
	"github.com/vartaverse/varta/backend/internal/dto"
	"github.com/vartaverse/varta/backend/internal/logger"
	"github.com/vartaverse/varta/backend/internal/metrics"
	"github.com/vartaverse/varta/backend/internal/util"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// mockCurrentUser is served by /users/me to anonymous callers
var mockCurrentUser = dto.UserResponse{
	ID:    "1",
	Email: "user@example.com",
	Name:  "Current User",
	Role:  "user",
}

// Ping answers with PING_MESSAGE
// GET /api/ping
func (h *Handlers) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.cfg.PingMessage})
}

// Login signs in a stored user, or synthesizes one for unknown credentials
// POST /users/login
func (h *Handlers) Login(c *gin.Context) {
	var req dto.LoginRequest
	_ = c.ShouldBindJSON(&req)

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		util.RespondBadRequest(c, "Email and password are required")
		return
	}

	result, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		util.RespondInternalError(c, "Login failed", err)
		return
	}
	metrics.RecordLogin(result.Synthesized)

	logger.Log.Info("User logged in",
		logger.WithUserID(dto.FormatID(result.User.ID)),
		zap.Bool("synthesized", result.Synthesized),
	)

	c.JSON(http.StatusOK, dto.LoginResponse{
		JWTToken: result.Token,
		UserName: result.User.Name,
		UserID:   dto.FormatID(result.User.ID),
	})
}

// Register creates an account
// POST /users/register
func (h *Handlers) Register(c *gin.Context) {
	var req dto.RegisterRequest
	_ = c.ShouldBindJSON(&req)

	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		util.RespondBadRequest(c, "Email, password, and name are required")
		return
	}

	user, err := h.auth.Register(auth.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			util.RespondConflict(c, "User already exists")
			return
		}
		util.RespondInternalError(c, "Registration failed", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Me returns the token user, or the fixed mock user without a token
// GET /users/me
func (h *Handlers) Me(c *gin.Context) {
	rawID := c.GetString("user_id")
	if rawID == "" {
		c.JSON(http.StatusOK, mockCurrentUser)
		return
	}

	user, err := h.auth.FindUser(currentUserID(c))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.ToUserResponse(user))
	case errors.Is(err, gorm.ErrRecordNotFound):
		// synthesized logins are never stored
		c.JSON(http.StatusOK, dto.UserResponse{
			ID:    rawID,
			Email: c.GetString("user_email"),
			Name:  c.GetString("user_name"),
			Role:  "user",
		})
	default:
		util.RespondInternalError(c, "Failed to load user", err)
	}
}
