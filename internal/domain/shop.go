package domain

import "time"

type Shop struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Logo          string    `json:"logo,omitempty"`
	VendorID      string    `json:"vendorId"`
	IsBlacklisted bool      `json:"isBlacklisted"`
	FollowerCount int       `json:"followerCount,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}
