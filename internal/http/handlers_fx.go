package http

import (
	"net/http"
	"strings"
)

type rateResponse struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
	Stale    bool    `json:"stale"`
}

// handleFxRate returns the multiplier for one unit of the requested currency
// in the base currency. A stale response means every live provider failed and
// the rate is a stored or default value.
func (s *Server) handleFxRate(w http.ResponseWriter, r *http.Request) {
	currency := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("currency")))
	if currency == "" {
		respondError(w, http.StatusBadRequest, "missing currency")
		return
	}
	rate, stale, err := s.rates.Rate(r.Context(), currency)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, rateResponse{Currency: currency, Rate: rate, Stale: stale})
}
