// Package middleware holds HTTP middleware shared across routers.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(next http.Handler) http.Handler
