// Package validation checks and normalizes the URLs submitted for shortening.
// All functions are pure and idempotent.
package validation

import (
	"net/url"
	"strings"
)

// Error describes why a URL failed validation. The reason is intended for the
// client and safe to include in a response body.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// SanitizeURL trims leading and trailing whitespace. Casing, path, and query
// are left untouched.
func SanitizeURL(rawURL string) string {
	return strings.TrimSpace(rawURL)
}

// ValidateURL reports whether rawURL is an absolute http or https URL with a
// plausible host. It returns a *Error carrying a client-facing reason when
// the URL is rejected.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &Error{Reason: "URL cannot be empty"}
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return &Error{Reason: "URL must start with http:// or https://"}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return &Error{Reason: "Invalid URL format"}
	}

	if len(parsed.Host) < 3 {
		return &Error{Reason: "Invalid domain name"}
	}

	return nil
}
