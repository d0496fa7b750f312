package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fjod/go_market/internal/domain"
)

type PaymentListParams struct {
	Page    int
	Include string
}

func (p PaymentListParams) CacheKey() string {
	return p.values().Encode()
}

func (p PaymentListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Include != "" {
		q.Set("include", p.Include)
	}
	return q
}

func (c *Client) ListPayments(ctx context.Context, params PaymentListParams) (Page[domain.Payment], error) {
	var page Page[domain.Payment]
	err := c.get(ctx, "/payments", params.values(), &page)
	return page, err
}

func (c *Client) GetPayment(ctx context.Context, id string) (domain.Payment, error) {
	var p domain.Payment
	err := c.get(ctx, "/payments/"+id, nil, &p)
	return p, err
}
