package auth

import "context"

// CompositeAuthenticator tries multiple authenticators in sequence, so one
// endpoint can accept either an API key or a JWT bearer token. It returns on
// the first successful authentication or after all fail.
type CompositeAuthenticator struct {
	// Authenticators is tried in order; put the cheap API key check
	// before JWT verification.
	Authenticators []Authenticator

	// StopOnFirst returns as soon as one scheme accepts. With it off the
	// chain runs to the end and keeps the first success, which lets every
	// scheme record its own audit metadata. Default: true.
	StopOnFirst bool
}

// NewCompositeAuthenticator chains the given schemes with StopOnFirst
// enabled.
func NewCompositeAuthenticator(auths ...Authenticator) *CompositeAuthenticator {
	return &CompositeAuthenticator{
		Authenticators: auths,
		StopOnFirst:    true,
	}
}

func (c *CompositeAuthenticator) Name() string {
	return "composite"
}

// Supports reports whether any chained scheme recognizes the request's
// credential shape.
func (c *CompositeAuthenticator) Supports(ctx context.Context, req *AuthRequest) bool {
	for _, auth := range c.Authenticators {
		if auth.Supports(ctx, req) {
			return true
		}
	}
	return false
}

// Authenticate runs the chain. Schemes that do not support the request
// are skipped; if none does, the result is a missing-credentials
// rejection rather than an error.
func (c *CompositeAuthenticator) Authenticate(ctx context.Context, req *AuthRequest) (*AuthResult, error) {
	if len(c.Authenticators) == 0 {
		return AuthFailure(ErrMissingCredentials, ""), nil
	}

	var lastResult *AuthResult
	var firstSuccess *AuthResult

	for _, auth := range c.Authenticators {
		if !auth.Supports(ctx, req) {
			continue
		}

		result, err := auth.Authenticate(ctx, req)
		if err != nil {
			// Internal errors abort the chain; a later authenticator must
			// not mask a broken one.
			return nil, err
		}

		lastResult = result

		if result.Authenticated {
			if c.StopOnFirst {
				return result, nil
			}
			if firstSuccess == nil {
				firstSuccess = result
			}
		}
	}

	if firstSuccess != nil {
		return firstSuccess, nil
	}

	if lastResult != nil {
		return lastResult, nil
	}

	return AuthFailure(ErrMissingCredentials, ""), nil
}

var _ Authenticator = (*CompositeAuthenticator)(nil)
