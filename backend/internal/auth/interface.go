package auth

import "github.com/vartaverse/varta/backend/internal/models"

// AuthServiceInterface is what the handlers and middleware need from Service
type AuthServiceInterface interface {
	Register(req RegisterRequest) (*models.User, error)
	Login(email, password string) (*LoginResult, error)
	ValidateToken(tokenString string) (*Claims, error)
	FindUser(id uint) (*models.User, error)
}

var _ AuthServiceInterface = (*Service)(nil)
