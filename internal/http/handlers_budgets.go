package http

import (
	"net/http"

	"ibudget/internal/core"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month != "" && !core.ValidMonth(month) {
		respondError(w, http.StatusBadRequest, "invalid month, want YYYY-MM")
		return
	}
	budgets, err := s.budgets.List(r.Context(), month)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, budgets)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var b core.Budget
	if err := decodeBody(r, &b); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	b.ID = 0
	if _, err := s.budgets.Create(r.Context(), &b); err != nil {
		respondStoreError(w, err)
		return
	}
	s.dashboard.Invalidate()
	respondJSON(w, http.StatusCreated, b)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var b core.Budget
	if err := decodeBody(r, &b); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	b.ID = id
	if err := s.budgets.Update(r.Context(), b); err != nil {
		respondStoreError(w, err)
		return
	}
	s.dashboard.Invalidate()
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.budgets.Delete(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	s.dashboard.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}
