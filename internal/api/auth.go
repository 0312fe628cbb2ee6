package api

import (
	"context"
	"fmt"

	"github.com/social4sports/sportlink/internal/model"
)

// Login exchanges credentials for an access token and profile.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &resp, nil
}

// Signup registers a new account and returns the initial session.
func (c *Client) Signup(ctx context.Context, reg model.Registration) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.post(ctx, "/auth/signup", reg, &resp); err != nil {
		return nil, fmt.Errorf("signup failed: %w", err)
	}
	return &resp, nil
}
