package api

import (
	"context"
	"net/http"

	authmodels "church-platform-backend/internal/features/auth/models"
)

// Register creates an account and returns the freshly minted token
// response. The backend signs the caller in on successful registration.
func (c *Client) Register(ctx context.Context, req authmodels.RegisterRequest) (*authmodels.TokenResponse, error) {
	var resp authmodels.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a token response.
func (c *Client) Login(ctx context.Context, req authmodels.LoginRequest) (*authmodels.TokenResponse, error) {
	var resp authmodels.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the profile bound to the installed token.
func (c *Client) Me(ctx context.Context) (*authmodels.User, error) {
	var user authmodels.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update and returns the
// authoritative copy stored by the backend.
func (c *Client) UpdateProfile(ctx context.Context, req authmodels.UpdateProfileRequest) (*authmodels.User, error) {
	var user authmodels.User
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
