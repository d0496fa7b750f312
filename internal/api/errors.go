package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError carries a non-2xx response: the HTTP status and the message the
// server sent, or a generic fallback when the body was not decodable.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

func apiErrorFrom(status int, body []byte) *APIError {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return &APIError{Status: status, Message: env.Message}
	}
	return &APIError{Status: status, Message: "something went wrong"}
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func IsNotFound(err error) bool     { return hasStatus(err, http.StatusNotFound) }
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }
func IsForbidden(err error) bool    { return hasStatus(err, http.StatusForbidden) }
func IsConflict(err error) bool     { return hasStatus(err, http.StatusConflict) }
func IsRateLimited(err error) bool  { return hasStatus(err, http.StatusTooManyRequests) }
