package auth

import (
	"context"
	"net/textproto"
)

// Authenticator validates the credentials on a chart request and returns
// the identity behind them.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods should honor cancellation/deadlines.
// - Errors: Authenticate returns (nil, error) only for internal failures
//   (a broken key store); rejected credentials are (AuthResult, nil) with
//   Authenticated false.
type Authenticator interface {
	// Name identifies the scheme, "api_key" or "jwt", and doubles as the
	// Method string stamped on results.
	Name() string

	// Supports reports whether the request carries this scheme's
	// credential shape, before any validation happens.
	Supports(ctx context.Context, req *AuthRequest) bool

	// Authenticate checks the credentials against the backing store or
	// signing key.
	Authenticate(ctx context.Context, req *AuthRequest) (*AuthResult, error)
}

// AuthRequest carries the credential material extracted from one HTTP
// request.
type AuthRequest struct {
	// Headers holds the request headers; the API key authenticator reads
	// X-API-Key and Authorization, the JWT authenticator reads the
	// Bearer token.
	Headers map[string][]string

	// Resource is the route being accessed, e.g. "/generate".
	Resource string

	// Metadata carries transport details such as the remote address, for
	// audit logging.
	Metadata map[string]any
}

// GetHeader returns the first value for a header, or empty string. Maps
// copied from http.Header hold canonicalized keys, so the exact lookup
// falls back to the canonical MIME form.
func (r *AuthRequest) GetHeader(key string) string {
	if r.Headers == nil {
		return ""
	}
	values := r.Headers[key]
	if len(values) == 0 {
		values = r.Headers[textproto.CanonicalMIMEHeaderKey(key)]
	}
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// AuthResult is the outcome of one authentication attempt. Authenticated
// true pairs with a non-nil Identity; false pairs with the rejection in
// Error. Method names the scheme that produced the result either way.
type AuthResult struct {
	Authenticated bool
	Identity      *Identity
	Error         error
	Method        string
}

// AuthSuccess builds a passing result for the given identity, stamping
// Method from the identity's auth method.
func AuthSuccess(identity *Identity) *AuthResult {
	return &AuthResult{
		Authenticated: true,
		Identity:      identity,
		Method:        string(identity.Method),
	}
}

// AuthFailure builds a rejection carrying err, which the middleware
// surfaces as a 401 detail.
func AuthFailure(err error, method string) *AuthResult {
	return &AuthResult{
		Authenticated: false,
		Error:         err,
		Method:        method,
	}
}

// AuthenticatorFunc adapts plain functions to the Authenticator
// interface. Tests and one-off schemes use it instead of a full type.
type AuthenticatorFunc struct {
	name     string
	supports func(ctx context.Context, req *AuthRequest) bool
	auth     func(ctx context.Context, req *AuthRequest) (*AuthResult, error)
}

func (f *AuthenticatorFunc) Name() string {
	return f.name
}

func (f *AuthenticatorFunc) Supports(ctx context.Context, req *AuthRequest) bool {
	return f.supports(ctx, req)
}

func (f *AuthenticatorFunc) Authenticate(ctx context.Context, req *AuthRequest) (*AuthResult, error) {
	return f.auth(ctx, req)
}

// NewAuthenticatorFunc wires the three callbacks into an authenticator.
// A nil supports or auth func will panic on use.
func NewAuthenticatorFunc(
	name string,
	supports func(ctx context.Context, req *AuthRequest) bool,
	auth func(ctx context.Context, req *AuthRequest) (*AuthResult, error),
) *AuthenticatorFunc {
	return &AuthenticatorFunc{
		name:     name,
		supports: supports,
		auth:     auth,
	}
}
