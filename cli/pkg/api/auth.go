package api

import (
	"context"

	"github.com/vartaverse/varta/cli/pkg/client"
	"github.com/vartaverse/varta/cli/pkg/logger"
)

// Login authenticates with email and password
func Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	logger.Debug("Logging in", "email", email)

	var response LoginResponse

	resp, err := client.Users().
		R().
		SetContext(ctx).
		SetBody(LoginRequest{Email: email, Password: password}).
		SetResult(&response).
		Post("/users/login")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return &response, nil
}

// Register creates an account. The response is the new user, not a session.
func Register(ctx context.Context, req RegisterRequest) (*User, error) {
	logger.Debug("Registering user", "email", req.Email)

	if req.Role == "" {
		req.Role = "user"
	}

	var user User

	resp, err := client.Users().
		R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&user).
		Post("/users/register")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return &user, nil
}
