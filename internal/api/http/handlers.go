package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/SairamThankari/url-shortener/internal/shortcode"
	"github.com/SairamThankari/url-shortener/internal/storage"
	"github.com/SairamThankari/url-shortener/internal/validation"
	"github.com/SairamThankari/url-shortener/pkg/response"
)

// healthResponse is the payload of the root health check endpoint.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// apiHealthResponse is the payload of the API health check endpoint.
type apiHealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// handleHealthCheck handles health check requests to ensure the server is running.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthResponse{
		Status:  "healthy",
		Service: "URL Shortener API",
	})
}

// handleAPIHealth handles API-level health check requests.
func handleAPIHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, apiHealthResponse{
		Status:  "ok",
		Message: "URL Shortener API is running",
	})
}

// shortenRequest represents the request payload for shortening a URL.
//
// URL is a pointer so that a request missing the field can be told apart
// from one carrying an empty string: the former is rejected here, the
// latter by the URL validator with its own reason.
type shortenRequest struct {
	URL *string `json:"url" validate:"required"`
}

// shortenResponse represents the response payload for a successful shortening.
type shortenResponse struct {
	ShortCode string `json:"short_code"`
	ShortURL  string `json:"short_url"`
}

// statsResponse represents the response payload for URL statistics.
type statsResponse struct {
	URL       string    `json:"url"`
	Clicks    int64     `json:"clicks"`
	CreatedAt time.Time `json:"created_at"`
}

// handleShortenURL handles POST requests to shorten a URL.
//
// The handler decodes and validates the input, calls the URL shortening
// service, and returns the generated short code along with the
// fully-qualified short URL.
func handleShortenURL(svc URLService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleShortenURL"

	return func(w http.ResponseWriter, r *http.Request) {
		var req shortenRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("URL is required"))
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("URL is required"))
			return
		}

		url, err := svc.ShortenURL(r.Context(), *req.URL)
		if err != nil {
			var vErr *validation.Error
			switch {
			case errors.As(err, &vErr):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(vErr.Reason))
			case errors.Is(err, storage.ErrShortCodeExists):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("Short code already exists"))
			case errors.Is(err, shortcode.ErrGenerationExhausted):
				httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("Unable to generate short code. Please try again."))
			default:
				httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.ServerErrorResponse)
			}
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, shortenResponse{
			ShortCode: url.ShortCode,
			ShortURL:  svc.ShortURL(url.ShortCode),
		})
	}
}

// handleRedirect handles GET requests that resolve a short code.
//
// A successful resolution counts one click and answers with a 302 redirect
// to the original URL.
func handleRedirect(svc URLService) http.HandlerFunc {
	const op = "api.http.handleRedirect"

	return func(w http.ResponseWriter, r *http.Request) {
		shortCode := chi.URLParam(r, "shortCode")

		url, err := svc.ResolveShortCode(r.Context(), shortCode)
		if err != nil {
			if errors.Is(err, storage.ErrURLNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.ShortCodeNotFoundResponse)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		http.Redirect(w, r, url.OriginalURL, http.StatusFound)
	}
}

// handleGetURLStats handles GET requests to retrieve usage statistics for a shortened URL.
//
// The handler fetches the original URL, the click count, and the creation
// timestamp for the given short code, returning a 404 error if the code
// doesn't exist.
func handleGetURLStats(svc URLService) http.HandlerFunc {
	const op = "api.http.handleGetURLStats"

	return func(w http.ResponseWriter, r *http.Request) {
		shortCode := chi.URLParam(r, "shortCode")

		url, err := svc.GetURLStats(r.Context(), shortCode)
		if err != nil {
			if errors.Is(err, storage.ErrURLNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.ShortCodeNotFoundResponse)
				return
			}

			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		render.JSON(w, r, statsResponse{
			URL:       url.OriginalURL,
			Clicks:    url.Clicks,
			CreatedAt: url.CreatedAt,
		})
	}
}
