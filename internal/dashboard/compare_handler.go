package dashboard

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fjod/go_market/internal/api"
	"github.com/fjod/go_market/internal/compare"
	"github.com/fjod/go_market/internal/domain"
	"github.com/fjod/go_market/internal/query"
)

type CompareHandler struct {
	store   *compare.Store
	catalog *api.Client
	queries *query.Layer
}

func NewCompareHandler(store *compare.Store, catalog *api.Client, queries *query.Layer) *CompareHandler {
	return &CompareHandler{store: store, catalog: catalog, queries: queries}
}

type CompareAddRequestDTO struct {
	ProductID string `json:"product_id"`
}

func (h *CompareHandler) GetList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Snapshot())
}

func (h *CompareHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req CompareAddRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := query.Fetch(r.Context(), h.queries, query.ResourceProduct, "id="+req.ProductID,
		func(ctx context.Context) (domain.Product, error) {
			return h.catalog.GetProduct(ctx, req.ProductID)
		})
	if err != nil {
		handleAPIError(w, err)
		return
	}

	if err := h.store.Add(product); err != nil {
		handleStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.store.Snapshot())
}

func (h *CompareHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.store.Remove(chi.URLParam(r, "product_id"))
	respondJSON(w, http.StatusOK, h.store.Snapshot())
}

func (h *CompareHandler) ClearList(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()
	respondJSON(w, http.StatusOK, h.store.Snapshot())
}
