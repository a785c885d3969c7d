package dairyapi

import (
	"context"
	"net/http"
)

// Signup registers an admin or customer and returns the identity payload plus
// the backend session cookie minted for it.
func (c *Client) Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, string, error) {
	var resp AuthResponse
	session, err := c.do(ctx, http.MethodPost, "/auth/signup/", nil, "", req, &resp)
	if err != nil {
		return nil, "", err
	}
	return &resp, session, nil
}

// Login authenticates by email or username and returns the identity payload
// plus the backend session cookie.
func (c *Client) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, string, error) {
	var resp AuthResponse
	session, err := c.do(ctx, http.MethodPost, "/auth/login/", nil, "", req, &resp)
	if err != nil {
		return nil, "", err
	}
	return &resp, session, nil
}

// Me resolves the current identity for a session cookie. An anonymous session
// yields a nil user, not an error.
func (c *Client) Me(ctx context.Context, session string) (*AuthUser, error) {
	var resp AuthResponse
	if _, err := c.do(ctx, http.MethodGet, "/auth/me/", nil, session, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout revokes the backend session. Callers clear local identity regardless
// of the outcome.
func (c *Client) Logout(ctx context.Context, session string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout/", nil, session, nil, nil)
	return err
}
