package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", s.handleListDecks)
			r.Post("/", s.handleCreateDeck)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDeck)
				r.Patch("/", s.handleUpdateDeck)
				r.Delete("/", s.handleDeleteDeck)
				r.Get("/stats", s.handleDeckStats)
				r.Get("/calendar", s.handleDeckCalendar)
				r.Get("/cards", s.handleListCards)
				r.Post("/cards", s.handleCreateCard)
				r.Get("/queue", s.handleQueue)
				r.Get("/export", s.handleExportDeck)
				r.Post("/import", s.handleImportCards)
			})
		})

		r.Route("/cards/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetCard)
			r.Patch("/", s.handleUpdateCard)
			r.Delete("/", s.handleDeleteCard)
			r.Post("/retire", s.handleRetireCard)
			r.Post("/review", s.handleReviewCard)
			r.Post("/skip", s.handleSkipCard)
			r.Post("/skip/undo", s.handleUndoSkipCard)
			r.Post("/bump", s.handleBumpCard)
			r.Post("/bump/undo", s.handleUndoBumpCard)
		})

		r.Route("/time", func(r chi.Router) {
			r.Get("/", s.handleTimeStatus)
			r.Post("/", s.handleSetTime)
			r.Delete("/", s.handleClearTime)
			r.Post("/reset", s.handleResetTime)
		})
	})

	return r
}
