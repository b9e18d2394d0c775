package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rabbitlabs/niftybot/internal/api"
	"github.com/rabbitlabs/niftybot/internal/config"
	"github.com/rabbitlabs/niftybot/internal/llm/gemini"
	"github.com/rabbitlabs/niftybot/internal/repository/sqlite"
	"github.com/rabbitlabs/niftybot/internal/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("model", cfg.Gemini.Model).
		Str("location", cfg.Gemini.Location).
		Str("db", cfg.Store.Path).
		Msg("Starting nifty-bot server")

	// Initialize session store
	store, err := sqlite.NewStore(context.Background(), cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize session store")
	}
	defer store.Close()

	// Initialize completion client and chat service
	completer := gemini.NewClient(cfg.Gemini)
	chatService := service.NewChatService(store, completer)

	// Initialize router
	router := api.NewRouter(chatService)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
