package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig sets how bearer tokens are located and which claims the
// service checks before trusting one.
type JWTConfig struct {
	// Issuer is the expected token issuer (iss claim).
	Issuer string

	// Audience is the expected token audience (aud claim).
	Audience string

	// HeaderName is the header containing the token.
	// Default: "Authorization"
	HeaderName string

	// TokenPrefix is the prefix before the token in the header.
	// Default: "Bearer "
	TokenPrefix string

	// PrincipalClaim names the claim that becomes the identity
	// principal. Default: "sub"
	PrincipalClaim string

	// RolesClaim names the claim holding the role list. Empty leaves
	// roles unset.
	RolesClaim string
}

// KeyProvider supplies the verification key for a token, selected by
// the kid header when present.
type KeyProvider interface {
	GetKey(ctx context.Context, keyID string) (any, error)
}

// StaticKeyProvider answers every key lookup with one shared secret,
// the HS256 setup the config loader wires from auth.jwt_secret.
type StaticKeyProvider struct {
	key []byte
}

// NewStaticKeyProvider wraps key as a KeyProvider.
func NewStaticKeyProvider(key []byte) *StaticKeyProvider {
	return &StaticKeyProvider{key: key}
}

// GetKey returns the shared secret regardless of key ID.
func (p *StaticKeyProvider) GetKey(_ context.Context, _ string) (any, error) {
	return p.key, nil
}

// JWTAuthenticator admits requests bearing a verifiable token whose
// issuer and audience match the configuration.
type JWTAuthenticator struct {
	config      JWTConfig
	keyProvider KeyProvider
}

// NewJWTAuthenticator creates an authenticator using keyProvider for
// verification keys, applying config defaults.
func NewJWTAuthenticator(config JWTConfig, keyProvider KeyProvider) *JWTAuthenticator {
	if config.HeaderName == "" {
		config.HeaderName = "Authorization"
	}
	if config.TokenPrefix == "" {
		config.TokenPrefix = "Bearer "
	}
	if config.PrincipalClaim == "" {
		config.PrincipalClaim = "sub"
	}

	return &JWTAuthenticator{
		config:      config,
		keyProvider: keyProvider,
	}
}

// Name returns "jwt".
func (a *JWTAuthenticator) Name() string {
	return "jwt"
}

// Supports reports whether the request carries a bearer token.
func (a *JWTAuthenticator) Supports(_ context.Context, req *AuthRequest) bool {
	header := req.GetHeader(a.config.HeaderName)
	return strings.HasPrefix(header, a.config.TokenPrefix)
}

// Authenticate parses and verifies the bearer token. Verification
// failures come back as failed results, not errors; errors are
// reserved for a broken key provider.
func (a *JWTAuthenticator) Authenticate(ctx context.Context, req *AuthRequest) (*AuthResult, error) {
	header := req.GetHeader(a.config.HeaderName)
	if header == "" {
		return AuthFailure(ErrMissingCredentials, "jwt"), nil
	}

	tokenString := strings.TrimPrefix(header, a.config.TokenPrefix)
	if tokenString == header {
		return AuthFailure(ErrMissingCredentials, "jwt"), nil
	}
	tokenString = strings.TrimSpace(tokenString)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		kid := ""
		if kidVal, ok := token.Header["kid"].(string); ok {
			kid = kidVal
		}

		return a.keyProvider.GetKey(ctx, kid)
	})

	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return AuthFailure(ErrTokenExpired, "jwt"), nil
		}
		return AuthFailure(ErrTokenMalformed, "jwt"), nil
	}

	if !token.Valid {
		return AuthFailure(ErrInvalidCredentials, "jwt"), nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return AuthFailure(ErrTokenMalformed, "jwt"), nil
	}

	if a.config.Issuer != "" {
		if iss, ok := claims["iss"].(string); !ok || iss != a.config.Issuer {
			return AuthFailure(ErrInvalidCredentials, "jwt"), nil
		}
	}

	if a.config.Audience != "" {
		aud := a.getAudience(claims)
		if !a.containsAudience(aud, a.config.Audience) {
			return AuthFailure(ErrInvalidCredentials, "jwt"), nil
		}
	}

	identity := a.buildIdentity(claims)

	return AuthSuccess(identity), nil
}

func (a *JWTAuthenticator) getAudience(claims jwt.MapClaims) []string {
	switch v := claims["aud"].(type) {
	case string:
		return []string{v}
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, a := range v {
			if s, ok := a.(string); ok {
				result = append(result, s)
			}
		}
		return result
	default:
		return nil
	}
}

func (a *JWTAuthenticator) containsAudience(audiences []string, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}

func (a *JWTAuthenticator) buildIdentity(claims jwt.MapClaims) *Identity {
	identity := &Identity{
		Method: AuthMethodJWT,
		Claims: make(map[string]any),
	}

	for k, v := range claims {
		identity.Claims[k] = v
	}

	if principal, ok := claims[a.config.PrincipalClaim].(string); ok {
		identity.Principal = principal
	}

	if a.config.RolesClaim != "" {
		if roles, ok := claims[a.config.RolesClaim].([]interface{}); ok {
			identity.Roles = make([]string, 0, len(roles))
			for _, r := range roles {
				if s, ok := r.(string); ok {
					identity.Roles = append(identity.Roles, s)
				}
			}
		}
	}

	if exp, ok := claims["exp"].(float64); ok {
		identity.ExpiresAt = time.Unix(int64(exp), 0)
	}

	if iat, ok := claims["iat"].(float64); ok {
		identity.IssuedAt = time.Unix(int64(iat), 0)
	}

	return identity
}

var _ Authenticator = (*JWTAuthenticator)(nil)

var _ KeyProvider = (*StaticKeyProvider)(nil)
