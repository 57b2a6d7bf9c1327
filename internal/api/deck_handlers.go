package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fireminder/fireminder/internal/clock"
	"github.com/fireminder/fireminder/internal/errors"
	"github.com/fireminder/fireminder/internal/logger"
	"github.com/fireminder/fireminder/internal/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := s.Decks.ListDecks(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, decks)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var input services.CreateDeckInput
	if err := s.decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.Decks.CreateDeck(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("deck created: id=%s name=%q", deck.ID, deck.Name)
	respondJSON(w, http.StatusCreated, deck)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := s.Decks.GetDeck(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deck)
}

func (s *Server) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateDeckInput
	if err := s.decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.Decks.UpdateDeck(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Decks.DeleteDeck(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("deck deleted: id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeckStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Stats.DeckStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// handleDeckCalendar serves the month view; year and month default to the
// current (possibly simulated) date.
func (s *Server) handleDeckCalendar(w http.ResponseWriter, r *http.Request) {
	now := s.Clock.Now()
	year := now.Year()
	month := now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid year"))
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid month"))
			return
		}
		month = time.Month(parsed)
	}

	cal, err := s.Stats.Calendar(r.Context(), chi.URLParam(r, "id"), year, month)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cal)
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "id")
	session := s.sessions.Snapshot(deckID)

	queue, err := s.Reviews.Queue(r.Context(), deckID, session)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"today": clock.Today(s.Clock),
		"cards": queue,
	})
}
