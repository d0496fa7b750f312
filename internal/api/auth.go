package api

import (
	"context"

	"github.com/fjod/go_market/internal/domain"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupInput struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     domain.UserRole `json:"role,omitempty"`
}

// Session is what the auth endpoints hand back: the bearer token plus the
// authenticated user snapshot.
type Session struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (Session, error) {
	var s Session
	err := c.post(ctx, "/auth/login", creds, &s)
	return s, err
}

func (c *Client) Signup(ctx context.Context, in SignupInput) (Session, error) {
	var s Session
	err := c.post(ctx, "/auth/signup", in, &s)
	return s, err
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.patch(ctx, "/auth/change-password", body, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	return c.post(ctx, "/auth/reset-password/"+token, map[string]string{"password": password}, nil)
}
