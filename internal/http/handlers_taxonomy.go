package http

import (
	"net/http"
	"strconv"

	"ibudget/internal/core"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.store.ListCategories(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cats)
}

func (s *Server) handleSaveCategory(w http.ResponseWriter, r *http.Request) {
	var c core.Category
	if err := decodeBody(r, &c); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	c.ID = 0
	if err := c.Validate(); err != nil {
		respondStoreError(w, err)
		return
	}
	if _, err := s.store.AddCategory(r.Context(), &c); err != nil {
		respondStoreError(w, err)
		return
	}
	s.dashboard.Invalidate()
	respondJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var c core.Category
	if err := decodeBody(r, &c); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	c.ID = id
	if err := c.Validate(); err != nil {
		respondStoreError(w, err)
		return
	}
	if err := s.store.PutCategory(r.Context(), c); err != nil {
		respondStoreError(w, err)
		return
	}
	s.dashboard.Invalidate()
	respondJSON(w, http.StatusOK, c)
}

// handleDeleteCategory removes only the category row. Transactions,
// subcategories and budgets pointing at it keep their ids and read as
// Unknown from then on.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteCategory(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	s.dashboard.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSubcategories(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("categoryId"); v != "" {
		categoryID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid categoryId")
			return
		}
		subs, err := s.store.SubcategoriesByCategory(r.Context(), categoryID)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, subs)
		return
	}
	subs, err := s.store.ListSubcategories(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, subs)
}

func (s *Server) handleSaveSubcategory(w http.ResponseWriter, r *http.Request) {
	var sub core.Subcategory
	if err := decodeBody(r, &sub); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	sub.ID = 0
	if err := sub.Validate(); err != nil {
		respondStoreError(w, err)
		return
	}
	if _, err := s.store.AddSubcategory(r.Context(), &sub); err != nil {
		respondStoreError(w, err)
		return
	}
	s.dashboard.Invalidate()
	respondJSON(w, http.StatusCreated, sub)
}

func (s *Server) handleUpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var sub core.Subcategory
	if err := decodeBody(r, &sub); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	sub.ID = id
	if err := sub.Validate(); err != nil {
		respondStoreError(w, err)
		return
	}
	if err := s.store.PutSubcategory(r.Context(), sub); err != nil {
		respondStoreError(w, err)
		return
	}
	s.dashboard.Invalidate()
	respondJSON(w, http.StatusOK, sub)
}

func (s *Server) handleDeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.DeleteSubcategory(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	s.dashboard.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}
