package service

import (
	"context"
	"strings"

	"github.com/vartaverse/varta/cli/pkg/api"
	"github.com/vartaverse/varta/cli/pkg/client"
	"github.com/vartaverse/varta/cli/pkg/credentials"
	clierrors "github.com/vartaverse/varta/cli/pkg/errors"
	"github.com/vartaverse/varta/cli/pkg/formatter"
	"github.com/vartaverse/varta/cli/pkg/logger"
	"github.com/vartaverse/varta/cli/pkg/output"
	"github.com/vartaverse/varta/cli/pkg/prompter"
)

// AuthService signs users in and out
type AuthService struct {
	env *Env
}

func NewAuthService(env *Env) *AuthService {
	return &AuthService{env: env}
}

func promptIfEmpty(value, label string, secret bool) (string, error) {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), nil
	}
	if secret {
		return prompter.PromptPassword(label)
	}
	return prompter.PromptString(label)
}

// Login authenticates and stores the credentials. Empty arguments are prompted for.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	if creds := s.env.Session.Credentials(); creds.IsValid() {
		output.PrintWarning("Already logged in as %s", creds.DisplayName(creds.UserID))
		if !s.env.Confirmer.Confirm("Continue with new login?") {
			return nil
		}
	}

	email, err := promptIfEmpty(email, "Email: ", false)
	if err != nil {
		return err
	}
	password, err = promptIfEmpty(password, "Password: ", true)
	if err != nil {
		return err
	}
	if email == "" || password == "" {
		return clierrors.ValidationError("email, password", "required")
	}

	resp, err := s.env.Store.Login(ctx, email, password)
	if err != nil {
		logger.Warn("Login failed", "email", email, "error", err)
		if api.IsUnauthorized(err) {
			return clierrors.AuthError("Invalid email or password").WithCause(err)
		}
		return clierrors.CategorizeError(err)
	}
	if resp.JWTToken == "" {
		return clierrors.AuthError("Login response did not include a token")
	}

	creds := credentials.New(resp.JWTToken, resp.UserID.String(), resp.UserName, email)
	if err := credentials.Save(creds); err != nil {
		return clierrors.NewCLIError(clierrors.ErrorTypeUnknown, "Failed to save credentials", err)
	}
	client.SetAuthToken(resp.JWTToken)

	if output.IsJSON() {
		return output.Print("", map[string]interface{}{
			"userId":    creds.UserID,
			"name":      creds.Name,
			"email":     creds.Email,
			"expiresAt": creds.ExpiresAt,
		})
	}
	output.PrintSuccess("Login successful!")
	output.PrintInfo("Logged in as %s", formatter.Bold.Sprint(creds.DisplayName(email)))
	return nil
}

// RegisterRequest holds the sign-up fields. Empty required fields are prompted for.
type RegisterRequest struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber string
	Bio         string
}

// Register creates an account. It does not log in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	var err error
	if req.Name, err = promptIfEmpty(req.Name, "Name: ", false); err != nil {
		return err
	}
	if req.Email, err = promptIfEmpty(req.Email, "Email: ", false); err != nil {
		return err
	}
	if req.Password, err = promptIfEmpty(req.Password, "Password: ", true); err != nil {
		return err
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return clierrors.ValidationError("name, email, password", "required")
	}

	user, err := s.env.Store.Register(ctx, api.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
	})
	if err != nil {
		logger.Warn("Registration failed", "email", req.Email, "error", err)
		if api.IsConflict(err) {
			return clierrors.ConflictError("An account with this email already exists").WithCause(err)
		}
		return clierrors.CategorizeError(err)
	}

	if output.IsJSON() {
		return output.Print("", user)
	}
	output.PrintSuccess("Account created for %s", user.DisplayName(req.Email))
	output.PrintInfo("Log in with 'varta auth login'")
	return nil
}

// Logout removes the stored credentials
func (s *AuthService) Logout() error {
	if s.env.Session.Credentials() == nil {
		output.PrintWarning("Not logged in")
		return nil
	}

	if err := credentials.Delete(); err != nil {
		return clierrors.NewCLIError(clierrors.ErrorTypeUnknown, "Failed to delete credentials", err)
	}
	client.ClearAuthToken()

	output.PrintSuccess("Logged out successfully")
	return nil
}

// WhoAmI prints the signed-in user
func (s *AuthService) WhoAmI(ctx context.Context) error {
	if !s.env.Session.IsAuthenticated() {
		if creds := s.env.Session.Credentials(); creds != nil && creds.IsExpired() {
			return clierrors.AuthError("Session expired")
		}
		return clierrors.AuthError("Not logged in")
	}

	user, err := s.env.Session.CurrentUser(ctx)
	if err != nil {
		return clierrors.CategorizeError(err)
	}
	return formatter.PrintUser(user)
}
