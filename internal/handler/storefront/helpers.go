// Package storefront exposes the catalog query engine and cart aggregate
// over a JSON API consumed by the storefront UI.
package storefront

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/vitrinelabs/vitrine/internal/domain"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps domain error codes to HTTP statuses and hides internal
// detail from the response body.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch domain.ErrorCode(err) {
	case domain.EINVALID:
		status = http.StatusBadRequest
	case domain.ENOTFOUND:
		status = http.StatusNotFound
	case domain.ECONFLICT:
		status = http.StatusConflict
	}

	respondJSON(w, status, errorResponse{
		Error: domain.ErrorMessage(err),
		Code:  domain.ErrorCode(err),
	})
}

// decimalParam parses a decimal query parameter. Missing or malformed
// values yield nil, which the query engine treats as "no constraint".
func decimalParam(r *http.Request, name string) *decimal.Decimal {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

// decimalValue converts a formatted money string to a float64 for
// histogram observation only; money math stays in decimal.
func decimalValue(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// floatParam parses a float query parameter with the same widening rule.
func floatParam(r *http.Request, name string) *float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
