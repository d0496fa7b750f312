package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fjod/go_market/internal/api"
	"github.com/fjod/go_market/internal/cart"
	"github.com/fjod/go_market/internal/domain"
	"github.com/fjod/go_market/internal/query"
)

type CartHandler struct {
	store   *cart.Store
	catalog *api.Client
	queries *query.Layer
	persist func(ctx context.Context, c domain.Cart)
	applied func(ctx context.Context) *domain.Coupon
}

func NewCartHandler(store *cart.Store, catalog *api.Client, queries *query.Layer,
	persist func(ctx context.Context, c domain.Cart), applied func(ctx context.Context) *domain.Coupon) *CartHandler {
	return &CartHandler{
		store:   store,
		catalog: catalog,
		queries: queries,
		persist: persist,
		applied: applied,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Replace   bool   `json:"replace"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// CartViewDTO is the cart plus its derived totals, recomputed per request.
type CartViewDTO struct {
	Cart      domain.Cart `json:"cart"`
	ItemCount int         `json:"itemCount"`
	Subtotal  float64     `json:"subtotal"`
	Saved     float64     `json:"saved"`
	Payable   float64     `json:"payable"`
	Warning   string      `json:"warning,omitempty"`
}

func (h *CartHandler) view(ctx context.Context, c domain.Cart, warning string) CartViewDTO {
	var coupon *domain.Coupon
	if h.applied != nil {
		coupon = h.applied(ctx)
	}
	return CartViewDTO{
		Cart:      c,
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
		Saved:     c.DiscountTotal(),
		Payable:   c.PayableWith(coupon),
		Warning:   warning,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.view(r.Context(), h.store.Snapshot(), ""))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	// The product snapshot comes through the cached read path, so repeated
	// adds of the same product do not hammer the API.
	product, err := query.Fetch(r.Context(), h.queries, query.ResourceProduct, "id="+req.ProductID,
		func(ctx context.Context) (domain.Product, error) {
			return h.catalog.GetProduct(ctx, req.ProductID)
		})
	if err != nil {
		handleAPIError(w, err)
		return
	}

	var res cart.ChangeResult
	if req.Replace {
		res, err = h.store.Replace(product, req.Quantity)
	} else {
		res, err = h.store.Add(product, req.Quantity)
	}
	if err != nil {
		handleStoreError(w, err)
		return
	}

	if h.persist != nil {
		h.persist(r.Context(), res.Cart)
	}
	respondJSON(w, http.StatusCreated, h.view(r.Context(), res.Cart, clampWarning(res, product)))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	res, err := h.store.UpdateQuantity(productID, req.Quantity)
	if err != nil {
		handleStoreError(w, err)
		return
	}

	if h.persist != nil {
		h.persist(r.Context(), res.Cart)
	}
	respondJSON(w, http.StatusOK, h.view(r.Context(), res.Cart, clampWarningByID(res, productID)))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	c, err := h.store.Remove(productID)
	if err != nil {
		handleStoreError(w, err)
		return
	}

	if h.persist != nil {
		h.persist(r.Context(), c)
	}
	respondJSON(w, http.StatusOK, h.view(r.Context(), c, ""))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	if h.persist != nil {
		h.persist(r.Context(), domain.Cart{})
	}
	respondJSON(w, http.StatusOK, h.view(r.Context(), h.store.Snapshot(), ""))
}

func clampWarning(res cart.ChangeResult, p domain.Product) string {
	if !res.Clamped {
		return ""
	}
	return onlyNAvailable(p.Quantity)
}

func clampWarningByID(res cart.ChangeResult, productID string) string {
	if !res.Clamped {
		return ""
	}
	for _, l := range res.Cart.Lines {
		if l.Product.ID == productID {
			return onlyNAvailable(l.Product.Quantity)
		}
	}
	return ""
}

func onlyNAvailable(n int) string {
	return fmt.Sprintf("only %d available", n)
}
