package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/SairamThankari/url-shortener/internal/models"
	"github.com/SairamThankari/url-shortener/internal/shortcode"
	"github.com/SairamThankari/url-shortener/internal/validation"
)

// URLRepository defines the interface for working with URLs at the business logic layer.
type URLRepository interface {
	// Create inserts a new shortened URL into the repository. The repository
	// performs the authoritative uniqueness check under its own lock and
	// returns storage.ErrShortCodeExists if the code is already taken.
	Create(ctx context.Context, shortCode, originalURL string) (*models.URL, error)

	// GetByShortCode retrieves a URL by its short code.
	// Returns the URL model if found or storage.ErrURLNotFound if not.
	GetByShortCode(ctx context.Context, shortCode string) (*models.URL, error)

	// IncrementClicks atomically bumps the click counter for a short code.
	// It reports whether the code exists.
	IncrementClicks(ctx context.Context, shortCode string) bool

	// Exists reports whether a short code is present. The result may be stale
	// relative to a later Create; it is used only to pre-screen candidates.
	Exists(ctx context.Context, shortCode string) bool

	// GetStats retrieves a URL by its short code without changing it.
	// Returns the URL model if found or storage.ErrURLNotFound if not.
	GetStats(ctx context.Context, shortCode string) (*models.URL, error)
}

// URLService provides methods to manage URL shortening operations.
// The service uses a URLRepository interface to interact with the underlying storage.
type URLService struct {
	repo        URLRepository
	baseURL     string
	codeLength  int
	maxAttempts int
}

// NewURLService creates a new instance of URLService. baseURL is the fixed
// origin used to format externally visible short URLs, codeLength the length
// of generated short codes, and maxAttempts the code generation budget.
func NewURLService(repo URLRepository, baseURL string, codeLength, maxAttempts int) *URLService {
	return &URLService{
		repo:        repo,
		baseURL:     strings.TrimRight(baseURL, "/"),
		codeLength:  codeLength,
		maxAttempts: maxAttempts,
	}
}

// ShortenURL sanitizes and validates the original URL, generates a unique
// short code for it, and stores the mapping.
//
// A validation failure surfaces as a *validation.Error. If another creator
// wins the race for the same code between the generator's probe and the
// store's commit, the store's storage.ErrShortCodeExists is surfaced as a
// conflict rather than retried with a fresh code.
func (s *URLService) ShortenURL(ctx context.Context, originalURL string) (*models.URL, error) {
	const op = "service.URLService.ShortenURL"

	originalURL = validation.SanitizeURL(originalURL)
	if err := validation.ValidateURL(originalURL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	code, err := shortcode.GenerateUnique(ctx, s.repo, s.codeLength, s.maxAttempts)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
	}

	url, err := s.repo.Create(ctx, code, originalURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
	}

	return url, nil
}

// ShortURL formats the fully-qualified short URL for a short code.
func (s *URLService) ShortURL(shortCode string) string {
	return s.baseURL + "/" + shortCode
}

// ResolveShortCode retrieves the original URL associated with the provided
// short code and counts the resolution as one click. The lookup and the
// increment are two separate atomic store operations; since records are
// never deleted, an increment after a successful lookup cannot miss.
func (s *URLService) ResolveShortCode(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "service.URLService.ResolveShortCode"

	url, err := s.repo.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	s.repo.IncrementClicks(ctx, shortCode)

	return url, nil
}

// GetURLStats retrieves the statistics for the URL associated with the
// provided short code. Repeated calls never change the click counter.
func (s *URLService) GetURLStats(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "service.URLService.GetURLStats"

	url, err := s.repo.GetStats(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url stats: %w", op, err)
	}

	return url, nil
}
