package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fjod/go_market/internal/domain"
)

func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var u domain.User
	err := c.get(ctx, "/users/me", nil, &u)
	return u, err
}

type UserInput struct {
	Name    string         `json:"name,omitempty"`
	Address domain.Address `json:"address,omitempty"`
}

func (c *Client) UpdateMe(ctx context.Context, in UserInput) (domain.User, error) {
	var u domain.User
	err := c.put(ctx, "/users/me", in, &u)
	return u, err
}

type UserListParams struct {
	Page  int
	Limit int
	Role  domain.UserRole
}

func (p UserListParams) CacheKey() string {
	return p.values().Encode()
}

func (p UserListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Role != "" {
		q.Set("role", string(p.Role))
	}
	return q
}

// ListUsers is admin-only server-side.
func (c *Client) ListUsers(ctx context.Context, params UserListParams) (Page[domain.User], error) {
	var page Page[domain.User]
	err := c.get(ctx, "/users", params.values(), &page)
	return page, err
}

func (c *Client) ChangeUserStatus(ctx context.Context, id string, status domain.UserStatus) (domain.User, error) {
	body := map[string]domain.UserStatus{"status": status}
	var u domain.User
	err := c.patch(ctx, "/users/change-status/"+id, body, &u)
	return u, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/users/"+id)
}
