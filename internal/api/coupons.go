package api

import (
	"context"
	"net/url"
	"time"

	"github.com/fjod/go_market/internal/domain"
)

func (c *Client) ListCoupons(ctx context.Context, shopID string) ([]domain.Coupon, error) {
	q := url.Values{}
	if shopID != "" {
		q.Set("shopId", shopID)
	}
	var coupons []domain.Coupon
	err := c.get(ctx, "/coupons", q, &coupons)
	return coupons, err
}

type CouponInput struct {
	Code      string    `json:"code"`
	Discount  float64   `json:"discount"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

func (c *Client) CreateCoupon(ctx context.Context, in CouponInput) (domain.Coupon, error) {
	var coupon domain.Coupon
	err := c.post(ctx, "/coupons", in, &coupon)
	return coupon, err
}

func (c *Client) UpdateCoupon(ctx context.Context, id string, in CouponInput) (domain.Coupon, error) {
	var coupon domain.Coupon
	err := c.put(ctx, "/coupons/"+id, in, &coupon)
	return coupon, err
}

func (c *Client) DeleteCoupon(ctx context.Context, id string) error {
	return c.delete(ctx, "/coupons/"+id)
}

// ApplyCoupon validates a code against a shop and returns the resulting
// coupon; the backend owns the validity rules.
func (c *Client) ApplyCoupon(ctx context.Context, code, shopID string) (domain.Coupon, error) {
	body := map[string]string{"code": code, "shopId": shopID}
	var coupon domain.Coupon
	err := c.put(ctx, "/coupons/apply", body, &coupon)
	return coupon, err
}
