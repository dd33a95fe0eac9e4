package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/SairamThankari/url-shortener/internal/models"
	"github.com/SairamThankari/url-shortener/pkg/middleware/recoverer"
	"github.com/SairamThankari/url-shortener/pkg/response"
)

// URLService defines the interface for the core URL shortening business logic.
type URLService interface {
	// ShortenURL creates a shortened version of the provided original URL.
	// It returns the stored URL details, or an error if validation fails,
	// code generation is exhausted, or the code loses a creation race.
	ShortenURL(ctx context.Context, originalURL string) (*models.URL, error)

	// ShortURL formats the fully-qualified short URL for a short code.
	ShortURL(shortCode string) string

	// ResolveShortCode retrieves the original URL for a given short code and
	// counts the resolution as one click.
	ResolveShortCode(ctx context.Context, shortCode string) (*models.URL, error)

	// GetURLStats retrieves the statistics of the URL associated with the
	// short code without changing them.
	GetURLStats(ctx context.Context, shortCode string) (*models.URL, error)
}

// getValidate initializes a new validator instance for validating incoming request payloads.
// It customizes tag name extraction from struct fields to match JSON tags.
func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// requireJSON is a guard composed ahead of body-carrying handlers. It rejects
// requests whose Content-Type is not application/json before the handler runs.
func requireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-Type")
		if mediaType, _, _ := strings.Cut(contentType, ";"); strings.TrimSpace(mediaType) != "application/json" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Content-Type must be application/json"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewRouter initializes and returns a new HTTP router with all routes and middleware configured.
func NewRouter(logger *httplog.Logger, urlSvc URLService) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"POST", "GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(recoverer.New(logger.Logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.ResourceNotFoundResponse)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, response.MethodNotAllowedResponse)
	})

	validate := getValidate()

	r.Get("/", handleHealthCheck)
	r.Get("/api/health", handleAPIHealth)
	r.With(requireJSON).Post("/api/shorten", handleShortenURL(urlSvc, validate))
	r.Get("/api/stats/{shortCode}", handleGetURLStats(urlSvc))
	r.Get("/{shortCode}", handleRedirect(urlSvc))

	return r
}
