package dashboard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fjod/go_market/internal/api"
	"github.com/fjod/go_market/internal/cart"
	"github.com/fjod/go_market/internal/compare"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleStoreError maps business-rule rejections from the stores and errors
// from the API client onto HTTP statuses. The vendor mismatch gets its own
// code so the UI knows to offer the replace-or-keep choice.
func handleStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrVendorMismatch):
		respondError(w, http.StatusConflict, "vendor_mismatch",
			"cart holds items from another shop; confirm replace to continue")
	case errors.Is(err, cart.ErrOutOfStock):
		respondError(w, http.StatusConflict, "out_of_stock", "product is out of stock")
	case errors.Is(err, cart.ErrLineNotFound):
		respondError(w, http.StatusNotFound, "line_not_found", "cart line not found")
	case errors.Is(err, compare.ErrCompareFull):
		respondError(w, http.StatusConflict, "compare_full", "comparison list is full")
	case errors.Is(err, compare.ErrCategoryMismatch):
		respondError(w, http.StatusConflict, "category_mismatch",
			"only products from one category can be compared")
	case errors.Is(err, compare.ErrAlreadyCompared):
		respondError(w, http.StatusConflict, "already_compared", "product is already being compared")
	default:
		handleAPIError(w, err)
	}
}

// handleAPIError converts an upstream API failure to a local response,
// keeping the server-provided message when there is one.
func handleAPIError(w http.ResponseWriter, err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		respondError(w, apiErr.Status, "upstream_error", apiErr.Message)
		return
	}
	respondError(w, http.StatusBadGateway, "upstream_unreachable", err.Error())
}
