package api

import (
	"net/http"

	"github.com/fireminder/fireminder/internal/logger"
	"github.com/fireminder/fireminder/internal/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input services.ReviewInput
	if err := s.decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Reviews.Review(r.Context(), id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	// a reviewed card leaves the session entirely
	s.sessions.Forget(card.DeckID, id)

	logger.FromContext(r.Context()).Info("card reviewed: id=%s interval=%d due=%s",
		id, card.CurrentInterval, card.NextDueDate)
	respondJSON(w, http.StatusOK, card)
}

// sessionFlag looks up the card's deck and applies a session-flag mutation.
func (s *Server) sessionFlag(w http.ResponseWriter, r *http.Request, apply func(deckID, cardID string)) {
	id := chi.URLParam(r, "id")
	card, err := s.Cards.GetCard(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	apply(card.DeckID, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSkipCard(w http.ResponseWriter, r *http.Request) {
	s.sessionFlag(w, r, s.sessions.Skip)
}

func (s *Server) handleUndoSkipCard(w http.ResponseWriter, r *http.Request) {
	s.sessionFlag(w, r, s.sessions.UndoSkip)
}

func (s *Server) handleBumpCard(w http.ResponseWriter, r *http.Request) {
	s.sessionFlag(w, r, s.sessions.Bump)
}

func (s *Server) handleUndoBumpCard(w http.ResponseWriter, r *http.Request) {
	s.sessionFlag(w, r, s.sessions.UndoBump)
}
