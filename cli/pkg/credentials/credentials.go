package credentials

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	json "github.com/json-iterator/go"
	"github.com/vartaverse/varta/cli/pkg/config"
)

// DefaultLifetime is assumed when the token carries no exp claim
const DefaultLifetime = 24 * time.Hour

type Credentials struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
}

// New builds credentials for a freshly issued token
func New(token, userID, name, email string) *Credentials {
	return &Credentials{
		AccessToken: token,
		ExpiresAt:   ExpiryOf(token),
		UserID:      userID,
		Name:        name,
		Email:       email,
	}
}

// ExpiryOf reads the exp claim without verifying the signature.
func ExpiryOf(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	return time.Now().Add(DefaultLifetime)
}

// Load loads credentials from disk
func Load() (*Credentials, error) {
	path := config.GetCredentialsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Credentials don't exist yet
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// Save saves credentials to disk
func Save(creds *Credentials) error {
	path := config.GetCredentialsPath()

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// Delete deletes credentials from disk. Missing credentials are not an error.
func Delete() error {
	err := os.Remove(config.GetCredentialsPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsExpired checks if the access token is expired
func (c *Credentials) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// IsValid checks if credentials are valid
func (c *Credentials) IsValid() bool {
	return c != nil && c.AccessToken != "" && !c.IsExpired()
}

// DisplayName returns the name, then the email, then fallback
func (c *Credentials) DisplayName(fallback string) string {
	if c == nil {
		return fallback
	}
	if c.Name != "" {
		return c.Name
	}
	if c.Email != "" {
		return c.Email
	}
	return fallback
}
