package auth

import "net/http"

// WithAuthHeaders is HTTP middleware that copies request headers into the
// context so authenticators can read Authorization and X-API-Key without
// holding the *http.Request. The server wraps its whole router with it, so
// headers are on the context before any route handler runs.
//
// Usage:
//
//	srv := &http.Server{Handler: auth.WithAuthHeaders(router)}
func WithAuthHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithHeaders(r.Context(), r.Header)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
