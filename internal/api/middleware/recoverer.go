package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rabbitlabs/niftybot/internal/api/response"
	"github.com/rs/zerolog/log"
)

// Recoverer turns panics into a generic 500. Only the error category is
// logged; no stack trace or request content reaches logs or clients.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Str("category", "unexpected").
					Str("request_id", middleware.GetReqID(r.Context())).
					Msg("Recovered from panic")
				response.InternalError(w, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
