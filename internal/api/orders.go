package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fjod/go_market/internal/domain"
)

type OrderListParams struct {
	Page    int
	Limit   int
	Include string
}

func (p OrderListParams) CacheKey() string {
	return p.values().Encode()
}

func (p OrderListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Include != "" {
		q.Set("include", p.Include)
	}
	return q
}

// ListOrders is scoped server-side by the caller's role: customers see their
// own orders, vendors their shop's, admins everything.
func (c *Client) ListOrders(ctx context.Context, params OrderListParams) (Page[domain.Order], error) {
	var page Page[domain.Order]
	err := c.get(ctx, "/orders", params.values(), &page)
	return page, err
}

func (c *Client) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	var o domain.Order
	err := c.get(ctx, "/orders/"+id, nil, &o)
	return o, err
}
