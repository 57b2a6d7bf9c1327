package api

import (
	"net/http"

	"github.com/fireminder/fireminder/internal/logger"
	"github.com/fireminder/fireminder/internal/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cards, err := s.Cards.ListCards(r.Context(), chi.URLParam(r, "id"),
		q.Get("retired") == "true", q.Get("deleted") == "true")
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCardInput
	if err := s.decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Cards.CreateCard(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("card created: id=%s deck_id=%s", card.ID, card.DeckID)
	respondJSON(w, http.StatusCreated, card)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	card, err := s.Cards.GetCard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateCardInput
	if err := s.decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Cards.UpdateCard(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}

func (s *Server) handleRetireCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	card, err := s.Cards.GetCard(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Cards.RetireCard(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	s.sessions.Forget(card.DeckID, id)
	logger.FromContext(r.Context()).Info("card retired: id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	card, err := s.Cards.GetCard(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Cards.DeleteCard(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	s.sessions.Forget(card.DeckID, id)
	logger.FromContext(r.Context()).Info("card deleted: id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}
