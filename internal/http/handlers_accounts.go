package http

import (
	"net/http"

	"ibudget/internal/core"
)

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.ListAccounts(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

func (s *Server) handleSaveAccount(w http.ResponseWriter, r *http.Request) {
	var a core.BankAccount
	if err := decodeBody(r, &a); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	a.ID = 0
	if err := a.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := s.store.AddAccount(r.Context(), &a); err != nil {
		respondStoreError(w, err)
		return
	}
	s.dashboard.Invalidate()
	respondJSON(w, http.StatusCreated, a)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var a core.BankAccount
	if err := decodeBody(r, &a); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	a.ID = id
	if err := a.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.PutAccount(r.Context(), a); err != nil {
		respondStoreError(w, err)
		return
	}
	s.dashboard.Invalidate()
	respondJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteAccount(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	s.dashboard.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}
