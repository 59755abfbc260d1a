package auth

import "time"

// AuthMethod records which credential admitted a request.
type AuthMethod string

const (
	AuthMethodNone      AuthMethod = "none"
	AuthMethodJWT       AuthMethod = "jwt"
	AuthMethodAPIKey    AuthMethod = "api_key"
	AuthMethodAnonymous AuthMethod = "anonymous"
)

// Identity is the caller as the server knows it after authentication.
// Handlers read it from the request context via IdentityFromContext.
type Identity struct {
	// Principal is the caller's stable identifier, the API key owner
	// or the token subject.
	Principal string

	// Roles come from the key registration or the token's role claim.
	Roles []string

	// Permissions are fine-grained grants such as "charts:generate".
	Permissions []string

	// Method records the credential kind that admitted the request.
	Method AuthMethod

	// Claims holds the raw token claims or key metadata.
	Claims map[string]any

	// ExpiresAt is the credential expiry, zero for no expiry.
	ExpiresAt time.Time

	// IssuedAt is when the credential was minted.
	IssuedAt time.Time
}

// HasRole reports whether role was granted to this identity.
func (id *Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasPermission reports whether perm was granted to this identity.
func (id *Identity) HasPermission(perm string) bool {
	for _, p := range id.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// IsExpired reports whether the credential behind this identity has
// lapsed. A zero expiry never expires.
func (id *Identity) IsExpired() bool {
	if id.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(id.ExpiresAt)
}

// IsAnonymous reports whether this identity names no caller.
func (id *Identity) IsAnonymous() bool {
	return id.Method == AuthMethodAnonymous || id.Principal == ""
}

// AnonymousIdentity is the identity handlers see when authentication
// is disabled.
func AnonymousIdentity() *Identity {
	return &Identity{
		Principal: "anonymous",
		Method:    AuthMethodAnonymous,
		Claims:    make(map[string]any),
	}
}
