package api

import (
	"net/http"
)

type setTimeRequest struct {
	Date string `json:"date" validate:"required"`
}

func (s *Server) handleTimeStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.Time.Status(r.Context()))
}

func (s *Server) handleSetTime(w http.ResponseWriter, r *http.Request) {
	var req setTimeRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	status, err := s.Time.SetDate(r.Context(), req.Date)
	if err != nil {
		handleError(w, r, err)
		return
	}

	// today changed, so every session's queue is stale
	s.sessions.Clear()
	respondJSON(w, http.StatusOK, status)
}

func (s *Server) handleClearTime(w http.ResponseWriter, r *http.Request) {
	status := s.Time.ClearDate(r.Context())
	s.sessions.Clear()
	respondJSON(w, http.StatusOK, status)
}

func (s *Server) handleResetTime(w http.ResponseWriter, r *http.Request) {
	status, err := s.Time.Reset(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	s.sessions.Clear()
	respondJSON(w, http.StatusOK, status)
}
