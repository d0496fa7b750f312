package domain

type CartLine struct {
	Product  Product `json:"product"` // snapshot taken when the line was added
	Quantity int     `json:"quantity"`
}

// LineTotal is quantity times the discounted unit price.
func (l CartLine) LineTotal() float64 {
	return float64(l.Quantity) * l.Product.DiscountedPrice()
}

// Cart holds the lines of the single active session cart. All lines belong
// to one shop; ShopID is empty exactly when Lines is empty.
type Cart struct {
	ShopID string     `json:"shopId,omitempty"`
	Lines  []CartLine `json:"lines"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount is the total number of units across all lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Subtotal sums line totals before any cart-level coupon.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.LineTotal()
	}
	return total
}

// DiscountTotal is how much the per-product discounts saved versus full price.
func (c Cart) DiscountTotal() float64 {
	var saved float64
	for _, l := range c.Lines {
		saved += float64(l.Quantity) * (l.Product.Price - l.Product.DiscountedPrice())
	}
	return saved
}

// PayableWith applies a cart-level coupon on top of the subtotal. A nil
// coupon or one issued for another shop changes nothing.
func (c Cart) PayableWith(coupon *Coupon) float64 {
	total := c.Subtotal()
	if coupon == nil || coupon.ShopID != c.ShopID || coupon.Discount <= 0 {
		return total
	}
	return total * (1 - coupon.Discount/100)
}
