package dashboard

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fjod/go_market/internal/api"
	"github.com/fjod/go_market/internal/domain"
	"github.com/fjod/go_market/internal/query"
)

// CatalogHandler serves read-only marketplace views through the cached
// query layer: products, orders and payments for the signed-in user.
type CatalogHandler struct {
	catalog *api.Client
	queries *query.Layer
}

func NewCatalogHandler(catalog *api.Client, queries *query.Layer) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, queries: queries}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := api.ProductListParams{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("searchTerm"),
		Page:     intQuery(r, "page"),
		Limit:    intQuery(r, "limit"),
	}

	page, err := query.Fetch(r.Context(), h.queries, query.ResourceProduct, params.CacheKey(),
		func(ctx context.Context) (api.Page[domain.Product], error) {
			return h.catalog.ListProducts(ctx, params)
		})
	if err != nil {
		handleAPIError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *CatalogHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	params := api.OrderListParams{
		Page:  intQuery(r, "page"),
		Limit: intQuery(r, "limit"),
	}

	page, err := query.Fetch(r.Context(), h.queries, query.ResourceOrder, params.CacheKey(),
		func(ctx context.Context) (api.Page[domain.Order], error) {
			return h.catalog.ListOrders(ctx, params)
		})
	if err != nil {
		handleAPIError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *CatalogHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	params := api.PaymentListParams{
		Page: intQuery(r, "page"),
	}

	page, err := query.Fetch(r.Context(), h.queries, query.ResourcePayment, params.CacheKey(),
		func(ctx context.Context) (api.Page[domain.Payment], error) {
			return h.catalog.ListPayments(ctx, params)
		})
	if err != nil {
		handleAPIError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func intQuery(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
