package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fjod/go_market/internal/domain"
)

type ReviewListParams struct {
	Page    int
	Limit   int
	Include string
}

func (p ReviewListParams) CacheKey() string {
	return p.values().Encode()
}

func (p ReviewListParams) values() url.Values {
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

func (c *Client) ListReviews(ctx context.Context, params ReviewListParams) (Page[domain.Review], error) {
	var page Page[domain.Review]
	err := c.get(ctx, "/reviews", params.values(), &page)
	return page, err
}

// ProductReviews lists reviews for a single product.
func (c *Client) ProductReviews(ctx context.Context, productID string, params ReviewListParams) (Page[domain.Review], error) {
	q := params.values()
	q.Set("productId", productID)
	var page Page[domain.Review]
	err := c.get(ctx, "/reviews", q, &page)
	return page, err
}

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

func (c *Client) CreateReview(ctx context.Context, productID string, in ReviewInput) (domain.Review, error) {
	var r domain.Review
	err := c.post(ctx, "/reviews/"+productID, in, &r)
	return r, err
}

func (c *Client) UpdateReview(ctx context.Context, id string, in ReviewInput) (domain.Review, error) {
	var r domain.Review
	err := c.put(ctx, "/reviews/"+id, in, &r)
	return r, err
}

func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.delete(ctx, "/reviews/"+id)
}
