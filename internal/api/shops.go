package api

import (
	"context"

	"github.com/fjod/go_market/internal/domain"
)

func (c *Client) GetShop(ctx context.Context, id string) (domain.Shop, error) {
	var s domain.Shop
	err := c.get(ctx, "/shop/"+id, nil, &s)
	return s, err
}

// ShopProfile returns the shop owned by the authenticated vendor.
func (c *Client) ShopProfile(ctx context.Context) (domain.Shop, error) {
	var s domain.Shop
	err := c.get(ctx, "/shop/profile", nil, &s)
	return s, err
}

type ShopInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

func (c *Client) CreateShop(ctx context.Context, in ShopInput) (domain.Shop, error) {
	var s domain.Shop
	err := c.post(ctx, "/shop", in, &s)
	return s, err
}

func (c *Client) UpdateShop(ctx context.Context, id string, in ShopInput) (domain.Shop, error) {
	var s domain.Shop
	err := c.put(ctx, "/shop/"+id, in, &s)
	return s, err
}

func (c *Client) FollowShop(ctx context.Context, id string) error {
	return c.post(ctx, "/shop/"+id+"/follow", nil, nil)
}

// BlacklistShop toggles the admin blacklist flag on a shop.
func (c *Client) BlacklistShop(ctx context.Context, id string) (domain.Shop, error) {
	var s domain.Shop
	err := c.patch(ctx, "/shop/blacklist/"+id, nil, &s)
	return s, err
}
