package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fjod/go_market/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func testClient(t *testing.T, handler http.Handler, cfg Config) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	if cfg.RateLimit == 0 {
		cfg.RateLimit = rate.Inf
	}
	return NewClient(cfg)
}

func writeEnvelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": status < 400,
		"message": "ok",
		"data":    data,
	})
}

func TestDo_AttachesAuthAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeEnvelope(w, http.StatusOK, domain.User{ID: "u1", Name: "Sam"})
	})

	sut := testClient(t, handler, Config{Tokens: StaticToken("tok-123")})
	u, err := sut.Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestDo_AnonymousWithoutTokenSource(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, []domain.Category{{ID: "c1", Name: "books"}})
	})

	sut := testClient(t, handler, Config{})
	cats, err := sut.ListCategories(context.Background())
	require.NoError(t, err)

	require.Len(t, cats, 1)
	assert.Empty(t, gotAuth)
}

func TestDo_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeEnvelope(w, http.StatusOK, domain.Product{ID: "A", Name: "widget"})
	})

	sut := testClient(t, handler, Config{MaxRetries: 3})
	p, err := sut.GetProduct(context.Background(), "A")
	require.NoError(t, err)

	assert.Equal(t, "widget", p.Name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	sut := testClient(t, handler, Config{MaxRetries: 1})
	_, err := sut.GetProduct(context.Background(), "A")
	require.ErrorContains(t, err, "server error: 503")
}

func TestDo_ServerMessageSurfacesInAPIError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"success":false,"message":"product not found"}`)
	})

	sut := testClient(t, handler, Config{})
	_, err := sut.GetProduct(context.Background(), "nope")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "product not found", apiErr.Message)
}

func TestDo_UndecodableErrorBodyFallsBack(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, "<html>conflict</html>")
	})

	sut := testClient(t, handler, Config{})
	_, err := sut.GetProduct(context.Background(), "A")

	assert.True(t, IsConflict(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "something went wrong", apiErr.Message)
}

func TestListProducts_PaginationPassthrough(t *testing.T) {
	next := 3
	prev := 1
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "electronics", r.URL.Query().Get("category"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		writeEnvelope(w, http.StatusOK, Page[domain.Product]{
			Data: []domain.Product{{ID: "A"}, {ID: "B"}},
			Pagination: Pagination{
				Page: 2, Limit: 2, TotalItem: 7, TotalPage: 4,
				NextPage: &next, PrevPage: &prev,
			},
		})
	})

	sut := testClient(t, handler, Config{})
	page, err := sut.ListProducts(context.Background(), ProductListParams{
		Category: "electronics", Page: 2, Limit: 2,
	})
	require.NoError(t, err)

	assert.Len(t, page.Data, 2)
	// Totals come straight from the server, never recomputed.
	assert.Equal(t, 7, page.Pagination.TotalItem)
	assert.Equal(t, 4, page.Pagination.TotalPage)
	require.NotNil(t, page.Pagination.NextPage)
	assert.Equal(t, 3, *page.Pagination.NextPage)
}

func TestLogin_DecodesSession(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "sam@example.com", creds.Email)

		writeEnvelope(w, http.StatusOK, Session{
			Token: "jwt-abc",
			User:  domain.User{ID: "u1", Role: domain.RoleCustomer},
		})
	})

	sut := testClient(t, handler, Config{})
	s, err := sut.Login(context.Background(), Credentials{Email: "sam@example.com", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, "jwt-abc", s.Token)
	assert.Equal(t, domain.RoleCustomer, s.User.Role)
}

func TestApplyCoupon_SendsCodeAndShop(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/coupons/apply", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "SAVE10", body["code"])
		assert.Equal(t, "S1", body["shopId"])

		writeEnvelope(w, http.StatusOK, domain.Coupon{Code: "SAVE10", ShopID: "S1", Discount: 10})
	})

	sut := testClient(t, handler, Config{})
	coupon, err := sut.ApplyCoupon(context.Background(), "SAVE10", "S1")
	require.NoError(t, err)
	assert.InDelta(t, 10, coupon.Discount, 1e-9)
}

func TestDelete_NoBodyExpected(t *testing.T) {
	var called bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/users/u9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	sut := testClient(t, handler, Config{})
	require.NoError(t, sut.DeleteUser(context.Background(), "u9"))
	assert.True(t, called)
}
