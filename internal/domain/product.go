package domain

import "time"

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductStatus mirrors the listing state owned by the backend.
type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
)

type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Price       float64       `json:"price"`
	Discount    float64       `json:"discount"` // percent, 0..100
	Quantity    int           `json:"quantity"` // available stock
	ShopID      string        `json:"shopId"`
	Category    Category      `json:"category"`
	Images      []string      `json:"images,omitempty"`
	Rating      float64       `json:"rating,omitempty"`
	Status      ProductStatus `json:"status,omitempty"`
	CreatedAt   time.Time     `json:"createdAt,omitempty"`
}

// DiscountedPrice returns the unit price after applying the percentage discount.
func (p Product) DiscountedPrice() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return p.Price * (1 - p.Discount/100)
}

// InStock reports whether at least one unit can be added to a cart.
func (p Product) InStock() bool {
	return p.Quantity > 0
}
