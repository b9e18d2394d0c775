package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rabbitlabs/niftybot/internal/api/handler"
	customMiddleware "github.com/rabbitlabs/niftybot/internal/api/middleware"
	"github.com/rabbitlabs/niftybot/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(chatService *service.ChatService) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(customMiddleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	chatHandler := handler.NewChatHandler(chatService)

	r.Get("/health", handler.HealthCheck)
	r.Post("/chat", chatHandler.Chat)

	return r
}
