package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/fjod/go_market/internal/api"
	"github.com/fjod/go_market/internal/cart"
	"github.com/fjod/go_market/internal/compare"
	"github.com/fjod/go_market/internal/domain"
	"github.com/fjod/go_market/internal/query"
)

type fixture struct {
	handler       http.Handler
	cartStore     *cart.Store
	compareStore  *compare.Store
	upstreamCalls *atomic.Int32
	persisted     *domain.Cart
}

// newFixture wires a dashboard against a fake upstream marketplace API
// serving the given products.
func newFixture(t *testing.T, products map[string]domain.Product) *fixture {
	t.Helper()

	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch {
		case strings.HasPrefix(r.URL.Path, "/products/"):
			id := strings.TrimPrefix(r.URL.Path, "/products/")
			p, ok := products[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"success":false,"message":"product not found"}`)
				return
			}
			writeUpstream(w, p)
		case r.URL.Path == "/products":
			list := make([]domain.Product, 0, len(products))
			for _, p := range products {
				list = append(list, p)
			}
			writeUpstream(w, api.Page[domain.Product]{
				Data:       list,
				Pagination: api.Pagination{Page: 1, Limit: 10, TotalItem: len(list), TotalPage: 1},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"success":false,"message":"not found"}`)
		}
	}))
	t.Cleanup(upstream.Close)

	client := api.NewClient(api.Config{BaseURL: upstream.URL, RateLimit: rate.Inf})

	store := query.NewMemoryStore()
	t.Cleanup(store.Stop)
	layer := query.NewLayer(store, time.Minute, slog.Default())

	cartStore := cart.NewStore()
	compareStore := compare.NewStore()

	f := &fixture{
		cartStore:     cartStore,
		compareStore:  compareStore,
		upstreamCalls: &calls,
		persisted:     &domain.Cart{},
	}

	persist := func(_ context.Context, c domain.Cart) { *f.persisted = c }
	cartHandler := NewCartHandler(cartStore, client, layer, persist, nil)
	compareHandler := NewCompareHandler(compareStore, client, layer)
	catalogHandler := NewCatalogHandler(client, layer)

	srv := NewServer(":0", slog.Default(), cartHandler, compareHandler, catalogHandler)
	f.handler = srv.Routes()
	return f
}

func writeUpstream(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "ok", "data": data})
}

func (f *fixture) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeCartView(t *testing.T, rec *httptest.ResponseRecorder) CartViewDTO {
	t.Helper()
	var view CartViewDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func testProducts() map[string]domain.Product {
	return map[string]domain.Product{
		"A": {ID: "A", Name: "phone", Price: 100, Quantity: 5, ShopID: "S1",
			Category: domain.Category{ID: "electronics"}},
		"B": {ID: "B", Name: "laptop", Price: 500, Quantity: 3, ShopID: "S1",
			Category: domain.Category{ID: "electronics"}},
		"C": {ID: "C", Name: "novel", Price: 20, Quantity: 10, ShopID: "S2",
			Category: domain.Category{ID: "books"}},
	}
}

func TestGetCart_Empty(t *testing.T) {
	f := newFixture(t, testProducts())

	rec := f.request(t, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodeCartView(t, rec)
	assert.Empty(t, view.Cart.Lines)
	assert.Zero(t, view.ItemCount)
}

func TestAddItem_Success(t *testing.T) {
	f := newFixture(t, testProducts())

	rec := f.request(t, http.MethodPost, "/cart/items", AddItemRequestDTO{ProductID: "A", Quantity: 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	view := decodeCartView(t, rec)
	assert.Equal(t, "S1", view.Cart.ShopID)
	assert.Equal(t, 2, view.ItemCount)
	assert.InDelta(t, 200, view.Subtotal, 1e-9)
	assert.Empty(t, view.Warning)

	// Mutations are written back to the session.
	assert.Equal(t, "S1", f.persisted.ShopID)
}

func TestAddItem_ClampWarningSurfaced(t *testing.T) {
	f := newFixture(t, testProducts())

	rec := f.request(t, http.MethodPost, "/cart/items", AddItemRequestDTO{ProductID: "A", Quantity: 99})
	require.Equal(t, http.StatusCreated, rec.Code)

	view := decodeCartView(t, rec)
	assert.Equal(t, 5, view.ItemCount)
	assert.Equal(t, "only 5 available", view.Warning)
}

func TestAddItem_VendorMismatchPromptsReplace(t *testing.T) {
	f := newFixture(t, testProducts())

	rec := f.request(t, http.MethodPost, "/cart/items", AddItemRequestDTO{ProductID: "A", Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.request(t, http.MethodPost, "/cart/items", AddItemRequestDTO{ProductID: "C", Quantity: 1})
	require.Equal(t, http.StatusConflict, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "vendor_mismatch", errResp.Code)

	// The cart is untouched by the rejected add.
	snap := f.cartStore.Snapshot()
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, "A", snap.Lines[0].Product.ID)
}

func TestAddItem_ReplaceDiscardsForeignCart(t *testing.T) {
	f := newFixture(t, testProducts())

	rec := f.request(t, http.MethodPost, "/cart/items", AddItemRequestDTO{ProductID: "A", Quantity: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.request(t, http.MethodPost, "/cart/items", AddItemRequestDTO{ProductID: "C", Quantity: 1, Replace: true})
	require.Equal(t, http.StatusCreated, rec.Code)

	view := decodeCartView(t, rec)
	assert.Equal(t, "S2", view.Cart.ShopID)
	require.Len(t, view.Cart.Lines, 1)
	assert.Equal(t, "C", view.Cart.Lines[0].Product.ID)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	f := newFixture(t, testProducts())

	rec := f.request(t, http.MethodPost, "/cart/items", AddItemRequestDTO{ProductID: "nope"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	f := newFixture(t, testProducts())

	rec := f.request(t, http.MethodPost, "/cart/items", AddItemRequestDTO{ProductID: "A", Quantity: 2})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.request(t, http.MethodPut, "/cart/items/A", UpdateQuantityRequestDTO{Quantity: 0})
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodeCartView(t, rec)
	assert.Empty(t, view.Cart.Lines)
	assert.Empty(t, view.Cart.ShopID)
}

func TestRemoveItem_UnknownLine(t *testing.T) {
	f := newFixture(t, testProducts())

	rec := f.request(t, http.MethodDelete, "/cart/items/A", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompare_AddAndCategoryMismatch(t *testing.T) {
	f := newFixture(t, testProducts())

	rec := f.request(t, http.MethodPost, "/compare/items", CompareAddRequestDTO{ProductID: "A"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.request(t, http.MethodPost, "/compare/items", CompareAddRequestDTO{ProductID: "C"})
	require.Equal(t, http.StatusConflict, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "category_mismatch", errResp.Code)
	assert.Equal(t, 1, f.compareStore.Len())
}

func TestCompare_RemoveIsIdempotent(t *testing.T) {
	f := newFixture(t, testProducts())

	rec := f.request(t, http.MethodPost, "/compare/items", CompareAddRequestDTO{ProductID: "A"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.request(t, http.MethodDelete, "/compare/items/A", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.request(t, http.MethodDelete, "/compare/items/A", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListProducts_SecondRequestServedFromCache(t *testing.T) {
	f := newFixture(t, testProducts())

	rec := f.request(t, http.MethodGet, "/products?page=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The cache write is async; eventually a repeat read stops hitting
	// the upstream at all.
	require.Eventually(t, func() bool {
		before := f.upstreamCalls.Load()
		rec = f.request(t, http.MethodGet, "/products?page=1", nil)
		return rec.Code == http.StatusOK && f.upstreamCalls.Load() == before
	}, time.Second, 20*time.Millisecond, "repeat read should not hit upstream")
}
