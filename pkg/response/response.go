// Package response defines the JSON payloads shared by the HTTP handlers.
package response

// Err is the generic error payload returned by every failing endpoint.
type Err struct {
	Error string `json:"error"`
}

var (
	// ShortCodeNotFoundResponse is returned when a short code doesn't exist.
	ShortCodeNotFoundResponse = Err{Error: "Short code not found"}
	// ResourceNotFoundResponse is returned for unmatched routes.
	ResourceNotFoundResponse = Err{Error: "Resource not found"}
	// MethodNotAllowedResponse is returned for unsupported methods on existing routes.
	MethodNotAllowedResponse = Err{Error: "Method not allowed"}
	// ServerErrorResponse is returned for any uncaught failure, without leaking details.
	ServerErrorResponse = Err{Error: "Internal server error"}
)

// Error wraps a client-facing message into an error payload.
func Error(msg string) Err {
	return Err{Error: msg}
}
