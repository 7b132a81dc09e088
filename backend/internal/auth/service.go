package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vartaverse/varta/backend/internal/logger"
	"github.com/vartaverse/varta/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenLifetime is how long issued tokens stay valid
const TokenLifetime = 24 * time.Hour

var (
	ErrUserExists   = errors.New("user already exists")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are carried in every issued token
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RegisterRequest holds the fields accepted by /users/register
type RegisterRequest struct {
	Email       string
	Password    string
	Name        string
	Role        string
	PhoneNumber string
	Bio         string
}

// LoginResult is a signed-in user and their token
type LoginResult struct {
	Token       string
	User        models.User
	Synthesized bool
}

// Service handles accounts and tokens for the dev server
type Service struct {
	db        *gorm.DB
	jwtSecret []byte
	now       func() time.Time
}

// NewService creates an auth service
func NewService(db *gorm.DB, jwtSecret []byte) *Service {
	return &Service{db: db, jwtSecret: jwtSecret, now: time.Now}
}

// Register creates an account with a bcrypt-hashed password
func (s *Service) Register(req RegisterRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = "user"
	}
	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
		PhoneNumber:  req.PhoneNumber,
		Bio:          req.Bio,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Log.Info("User registered", logger.WithUserID(strconv.FormatUint(uint64(user.ID), 10)))
	return &user, nil
}

// Login signs a user in. An exact email and password match returns the stored
// user; anything else gets a throwaway user named after the email prefix.
func (s *Service) Login(email, password string) (*LoginResult, error) {
	var (
		user        models.User
		synthesized bool
	)
	err := s.db.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil && bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil:
		// stored user
	case err == nil || errors.Is(err, gorm.ErrRecordNotFound):
		user = s.synthesize(email)
		synthesized = true
		logger.Log.Debug("Synthesized login user", zap.String("email", email), zap.Uint("id", user.ID))
	default:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user, Synthesized: synthesized}, nil
}

func (s *Service) synthesize(email string) models.User {
	name := email
	if i := strings.Index(email, "@"); i >= 0 {
		name = email[:i]
	}
	return models.User{
		ID:    uint(s.now().UnixMilli()),
		Email: email,
		Name:  name,
		Role:  "user",
	}
}

// GenerateToken signs an HS256 token for user
func (s *Service) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	id := strconv.FormatUint(uint64(user.ID), 10)
	claims := Claims{
		UserID: id,
		Name:   user.Name,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and expiry of tokenString
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// FindUser loads a stored user by id
func (s *Service) FindUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
