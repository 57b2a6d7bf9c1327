package api

import (
	"io"
	"net/http"

	"github.com/fireminder/fireminder/internal/errors"
	"github.com/fireminder/fireminder/internal/logger"
	"github.com/go-chi/chi/v5"
)

const maxImportSize = 4 << 20 // 4 MiB

func (s *Server) handleExportDeck(w http.ResponseWriter, r *http.Request) {
	md, err := s.Transfer.ExportDeck(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, md)
}

// handleImportCards accepts a raw markdown body and creates a card per
// paragraph, skipping content the deck already has.
func (s *Server) handleImportCards(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("failed to read request body"))
		return
	}
	if len(body) == 0 {
		handleError(w, r, errors.NewBadRequestError("empty import body"))
		return
	}

	deckID := chi.URLParam(r, "id")
	created, err := s.Transfer.ImportCards(r.Context(), deckID, string(body))
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("cards imported: deck_id=%s count=%d", deckID, len(created))
	respondJSON(w, http.StatusCreated, map[string]any{
		"imported": len(created),
		"cards":    created,
	})
}
