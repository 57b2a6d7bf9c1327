package api

import (
	"github.com/fireminder/fireminder/internal/clock"
	"github.com/fireminder/fireminder/internal/db"
	"github.com/fireminder/fireminder/internal/services"
	"github.com/go-playground/validator/v10"
)

type Server struct {
	DB       *db.DB
	Clock    clock.Clock
	Decks    services.DeckService
	Cards    services.CardService
	Reviews  services.ReviewService
	Stats    services.StatsService
	Transfer services.TransferService
	Time     services.TimeService

	sessions *sessionStore
	validate *validator.Validate
}

// NewServer wires the HTTP layer around the service layer. Session flags live
// here because they are per-process state, not data.
func NewServer(database *db.DB, clk clock.Clock, decks services.DeckService, cards services.CardService,
	reviews services.ReviewService, stats services.StatsService, transfer services.TransferService,
	timeSvc services.TimeService) *Server {
	return &Server{
		DB:       database,
		Clock:    clk,
		Decks:    decks,
		Cards:    cards,
		Reviews:  reviews,
		Stats:    stats,
		Transfer: transfer,
		Time:     timeSvc,
		sessions: newSessionStore(),
		validate: validator.New(),
	}
}
