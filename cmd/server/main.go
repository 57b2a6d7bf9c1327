package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fireminder/fireminder/internal/api"
	"github.com/fireminder/fireminder/internal/clock"
	"github.com/fireminder/fireminder/internal/config"
	"github.com/fireminder/fireminder/internal/db"
	"github.com/fireminder/fireminder/internal/logger"
	"github.com/fireminder/fireminder/internal/repository/sqlite"
	"github.com/fireminder/fireminder/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Fireminder Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)

	// Simulated wraps the wall clock; every date the app computes flows
	// through it so the whole server time-travels together.
	clk := clock.NewSimulated(clock.System{})
	real := clock.System{}

	deckService := services.NewDeckService(deckRepo, clk, real)
	cardService := services.NewCardService(deckRepo, cardRepo, clk, real)
	reviewService := services.NewReviewService(deckRepo, cardRepo, clk)
	statsService := services.NewStatsService(deckRepo, cardRepo, clk)
	transferService := services.NewTransferService(deckRepo, cardRepo, clk, real)
	timeService := services.NewTimeService(clk, deckRepo, cardRepo)

	srv := api.NewServer(database, clk, deckService, cardService,
		reviewService, statsService, transferService, timeService)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Fireminder Server Stopped")
	log.Info("===========================================")
}
