package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// APIKeyConfig sets where the key travels and how stored keys are
// hashed. The service reads keys from the X-API-Key header by default.
type APIKeyConfig struct {
	// HeaderName is the header containing the API key.
	// Default: "X-API-Key"
	HeaderName string

	// HashAlgorithm hashes presented keys before lookup.
	// Options: "sha256" (default), "plain"
	HashAlgorithm string
}

// APIKeyInfo describes one registered client key. Config files carry
// these (minus the plaintext key) under auth.api_keys.
type APIKeyInfo struct {
	// ID is a unique identifier for this key.
	ID string

	// KeyHash is the hashed API key (SHA-256 hex).
	KeyHash string

	// Principal names the client this key belongs to.
	Principal string

	// Roles are granted to every request made with this key.
	Roles []string

	// ExpiresAt is when this key expires (zero = never).
	ExpiresAt time.Time

	// Metadata is copied into the identity claims verbatim.
	Metadata map[string]any
}

// APIKeyStore looks up registered keys by hash.
type APIKeyStore interface {
	// Lookup retrieves an API key by its hash.
	// Returns nil if not found.
	Lookup(ctx context.Context, keyHash string) (*APIKeyInfo, error)
}

// APIKeyAuthenticator admits requests that present a registered key.
// Keys are compared by SHA-256 hash so the store never holds
// plaintext key material.
type APIKeyAuthenticator struct {
	config APIKeyConfig
	store  APIKeyStore
}

// NewAPIKeyAuthenticator creates an authenticator over store, applying
// config defaults.
func NewAPIKeyAuthenticator(config APIKeyConfig, store APIKeyStore) *APIKeyAuthenticator {
	if config.HeaderName == "" {
		config.HeaderName = "X-API-Key"
	}
	if config.HashAlgorithm == "" {
		config.HashAlgorithm = "sha256"
	}

	return &APIKeyAuthenticator{
		config: config,
		store:  store,
	}
}

// Name returns "api_key".
func (a *APIKeyAuthenticator) Name() string {
	return "api_key"
}

// Supports reports whether the request carries the key header.
func (a *APIKeyAuthenticator) Supports(_ context.Context, req *AuthRequest) bool {
	return req.GetHeader(a.config.HeaderName) != ""
}

// Authenticate hashes the presented key, looks it up, and checks
// expiry. Unknown keys fail authentication without error.
func (a *APIKeyAuthenticator) Authenticate(ctx context.Context, req *AuthRequest) (*AuthResult, error) {
	apiKey := req.GetHeader(a.config.HeaderName)
	if apiKey == "" {
		return AuthFailure(ErrMissingCredentials, "api_key"), nil
	}

	apiKey = strings.TrimSpace(apiKey)
	keyHash := a.hashKey(apiKey)

	info, err := a.store.Lookup(ctx, keyHash)
	if err != nil {
		return nil, err
	}

	if info == nil {
		return AuthFailure(ErrInvalidCredentials, "api_key"), nil
	}

	if !info.ExpiresAt.IsZero() && time.Now().After(info.ExpiresAt) {
		return AuthFailure(ErrTokenExpired, "api_key"), nil
	}

	identity := &Identity{
		Principal: info.Principal,
		Roles:     info.Roles,
		Method:    AuthMethodAPIKey,
		ExpiresAt: info.ExpiresAt,
		Claims:    make(map[string]any),
	}

	if info.Metadata != nil {
		for k, v := range info.Metadata {
			identity.Claims[k] = v
		}
	}
	identity.Claims["key_id"] = info.ID

	return AuthSuccess(identity), nil
}

func (a *APIKeyAuthenticator) hashKey(key string) string {
	switch a.config.HashAlgorithm {
	case "plain":
		return key
	case "sha256", "":
		hash := sha256.Sum256([]byte(key))
		return hex.EncodeToString(hash[:])
	default:
		// Unknown algorithm names hash as SHA-256.
		hash := sha256.Sum256([]byte(key))
		return hex.EncodeToString(hash[:])
	}
}

// HashAPIKey hashes a plaintext key with SHA-256 for storage and
// config files.
func HashAPIKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:])
}

// ConstantTimeCompare compares two strings in constant time.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// MemoryAPIKeyStore holds keys in memory. The config loader fills one
// from auth.api_keys at startup.
type MemoryAPIKeyStore struct {
	mu   sync.RWMutex
	keys map[string]*APIKeyInfo // keyed by hash
}

// NewMemoryAPIKeyStore creates an empty in-memory store.
func NewMemoryAPIKeyStore() *MemoryAPIKeyStore {
	return &MemoryAPIKeyStore{
		keys: make(map[string]*APIKeyInfo),
	}
}

// Lookup returns the key registered under keyHash, or nil.
func (s *MemoryAPIKeyStore) Lookup(_ context.Context, keyHash string) (*APIKeyInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[keyHash], nil
}

// Add registers info under its KeyHash.
func (s *MemoryAPIKeyStore) Add(info *APIKeyInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[info.KeyHash] = info
	return nil
}

// Remove drops the key registered under keyHash.
func (s *MemoryAPIKeyStore) Remove(keyHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, keyHash)
	return nil
}

var _ Authenticator = (*APIKeyAuthenticator)(nil)

var _ APIKeyStore = (*MemoryAPIKeyStore)(nil)
