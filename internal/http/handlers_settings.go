package http

import (
	"net/http"
	"strings"

	"ibudget/internal/core"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	set, err := s.store.GetSettings(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, set)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var set core.Settings
	if err := decodeBody(r, &set); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if strings.TrimSpace(set.BaseCurrency) == "" {
		respondError(w, http.StatusBadRequest, "missing baseCurrency")
		return
	}
	set.Key = core.SettingsKey
	if err := s.store.PutSettings(r.Context(), set); err != nil {
		respondStoreError(w, err)
		return
	}
	s.dashboard.Invalidate()
	respondJSON(w, http.StatusOK, set)
}
