package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ibudget/internal/backup"
)

// maxImportBytes caps uploaded backup documents.
const maxImportBytes = 32 << 20

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, err := backup.Export(r.Context(), s.store)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", backup.Filename(time.Now())))
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(snap)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "read body")
		return
	}
	snap, err := backup.Import(r.Context(), s.store, data)
	if errors.Is(err, backup.ErrBadDocument) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.dashboard.Invalidate()
	respondJSON(w, http.StatusOK, map[string]int{
		"transactions":  len(snap.Transactions),
		"categories":    len(snap.Categories),
		"subcategories": len(snap.Subcategories),
		"accounts":      len(snap.Accounts),
		"budgets":       len(snap.Budgets),
	})
}
