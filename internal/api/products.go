package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fjod/go_market/internal/domain"
)

type ProductListParams struct {
	Category string
	Search   string
	Include  string
	Page     int
	Limit    int
}

// CacheKey serializes the params into the query-layer cache key form.
func (p ProductListParams) CacheKey() string {
	return p.values().Encode()
}

func (p ProductListParams) values() url.Values {
	q := url.Values{}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Search != "" {
		q.Set("searchTerm", p.Search)
	}
	if p.Include != "" {
		q.Set("include", p.Include)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

func (c *Client) ListProducts(ctx context.Context, params ProductListParams) (Page[domain.Product], error) {
	var page Page[domain.Product]
	err := c.get(ctx, "/products", params.values(), &page)
	return page, err
}

func (c *Client) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := c.get(ctx, "/products/"+id, nil, &p)
	return p, err
}

type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Discount    float64  `json:"discount,omitempty"`
	Quantity    int      `json:"quantity"`
	CategoryID  string   `json:"categoryId"`
	Images      []string `json:"images,omitempty"`
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	var p domain.Product
	err := c.post(ctx, "/products", in, &p)
	return p, err
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (domain.Product, error) {
	var p domain.Product
	err := c.put(ctx, "/products/"+id, in, &p)
	return p, err
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, "/products/"+id)
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	err := c.get(ctx, "/categories", nil, &cats)
	return cats, err
}
