package auth

import (
	"sync"

	"github.com/vartaverse/varta/backend/internal/models"
	"gorm.io/gorm"
)

// MockCall records a method call for assertion
type MockCall struct {
	Method string
	Args   []interface{}
}

// MockAuthService is a test double for AuthServiceInterface
type MockAuthService struct {
	mu    sync.Mutex
	Calls []MockCall

	RegisterFunc      func(req RegisterRequest) (*models.User, error)
	LoginFunc         func(email, password string) (*LoginResult, error)
	ValidateTokenFunc func(tokenString string) (*Claims, error)
	FindUserFunc      func(id uint) (*models.User, error)
}

var _ AuthServiceInterface = (*MockAuthService)(nil)

func (m *MockAuthService) record(method string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
}

// CallCount returns how many times method was called
func (m *MockAuthService) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (m *MockAuthService) Register(req RegisterRequest) (*models.User, error) {
	m.record("Register", req)
	if m.RegisterFunc != nil {
		return m.RegisterFunc(req)
	}
	return &models.User{ID: 1, Email: req.Email, Name: req.Name, Role: "user"}, nil
}

func (m *MockAuthService) Login(email, password string) (*LoginResult, error) {
	m.record("Login", email)
	if m.LoginFunc != nil {
		return m.LoginFunc(email, password)
	}
	return &LoginResult{Token: "mock-token", User: models.User{ID: 1, Email: email}}, nil
}

func (m *MockAuthService) ValidateToken(tokenString string) (*Claims, error) {
	m.record("ValidateToken", tokenString)
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}
	return nil, ErrInvalidToken
}

func (m *MockAuthService) FindUser(id uint) (*models.User, error) {
	m.record("FindUser", id)
	if m.FindUserFunc != nil {
		return m.FindUserFunc(id)
	}
	return nil, gorm.ErrRecordNotFound
}
