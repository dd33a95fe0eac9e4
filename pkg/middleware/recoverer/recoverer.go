// Package recoverer converts handler panics into the generic JSON server error.
package recoverer

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/SairamThankari/url-shortener/pkg/middleware"
	"github.com/SairamThankari/url-shortener/pkg/response"
)

// New returns a middleware that recovers from panics in downstream handlers,
// logs the panic value, and responds with a 500 without leaking details.
func New(logger *slog.Logger) middleware.Middleware {
	const op = "middleware.recoverer.New"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error(
						"panic occurred while handling request",
						slog.Group(op, slog.Any("panic", rec), slog.String("path", r.URL.Path)),
					)

					render.Status(r, http.StatusInternalServerError)
					render.JSON(w, r, response.ServerErrorResponse)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
