package domain

import "time"

type Coupon struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	ShopID    string    `json:"shopId"`
	Discount  float64   `json:"discount"` // percent off the cart subtotal
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the coupon is past its expiry. A zero expiry
// means the backend issued it without one.
func (c Coupon) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
