package catalog

import (
	"context"
	"errors"

	"github.com/DjordjeVuckovic/title-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
)

// Me returns the signed-in user. Without a session the API answers 401,
// which surfaces as an apperr.Unauthenticated error.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var resp domain.AuthResponse
	if err := c.get(ctx, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Login starts a session. A rejected login is reported as
// apperr.InvalidCredentials rather than Unauthenticated.
func (c *Client) Login(ctx context.Context, payload domain.LoginPayload) (*domain.User, error) {
	var resp domain.AuthResponse
	if err := c.post(ctx, "/auth/login", payload, &resp); err != nil {
		var ae *apperr.APIError
		if errors.As(err, &ae) && ae.Kind == apperr.Unauthenticated {
			ae.Kind = apperr.InvalidCredentials
		}
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) Signup(ctx context.Context, payload domain.SignupPayload) (*domain.User, error) {
	var resp domain.AuthResponse
	if err := c.post(ctx, "/auth/signup", payload, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout revokes the session cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}
