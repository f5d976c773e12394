package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"ibudget/internal/core"
	"ibudget/internal/query"
	"ibudget/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondStoreError maps domain and storage errors onto status codes.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, core.ErrBudgetExists):
		respondError(w, http.StatusConflict, err.Error())
	case isValidationError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidDate, core.ErrInvalidMonth, core.ErrInvalidAmount,
		core.ErrInvalidType, core.ErrInvalidFx, core.ErrEmptyDescription,
		core.ErrEmptyName, core.ErrMissingCategory,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// pathID parses the {id} path segment. Zero and negative ids are rejected.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

// parseFilter reads the shared filter query parameters. Unparsable ids are
// treated as absent rather than rejected.
func parseFilter(r *http.Request) query.Filter {
	q := r.URL.Query()
	f := query.Filter{
		Q:    strings.TrimSpace(q.Get("q")),
		From: strings.TrimSpace(q.Get("from")),
		To:   strings.TrimSpace(q.Get("to")),
		Type: strings.TrimSpace(q.Get("type")),
	}
	if v := q.Get("categoryId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.CategoryID = id
		}
	}
	if v := q.Get("accountId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.AccountID = id
		}
	}
	return f
}
