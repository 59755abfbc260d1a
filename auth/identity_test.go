package auth

import (
	"testing"
	"time"
)

func TestIdentity_HasRole(t *testing.T) {
	tests := []struct {
		name     string
		identity *Identity
		role     string
		want     bool
	}{
		{
			name:     "empty roles",
			identity: &Identity{Roles: []string{}},
			role:     "admin",
			want:     false,
		},
		{
			name:     "has role",
			identity: &Identity{Roles: []string{"charts:generate", "admin"}},
			role:     "admin",
			want:     true,
		},
		{
			name:     "does not have role",
			identity: &Identity{Roles: []string{"charts:generate"}},
			role:     "admin",
			want:     false,
		},
		{
			name:     "match is exact, not prefix",
			identity: &Identity{Roles: []string{"charts:generate"}},
			role:     "charts",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.identity.HasRole(tt.role); got != tt.want {
				t.Errorf("Identity.HasRole(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestIdentity_HasPermission(t *testing.T) {
	tests := []struct {
		name       string
		identity   *Identity
		permission string
		want       bool
	}{
		{
			name:       "empty permissions",
			identity:   &Identity{Permissions: []string{}},
			permission: "charts:read",
			want:       false,
		},
		{
			name:       "has permission",
			identity:   &Identity{Permissions: []string{"charts:read", "charts:generate"}},
			permission: "charts:generate",
			want:       true,
		},
		{
			name:       "does not have permission",
			identity:   &Identity{Permissions: []string{"charts:read"}},
			permission: "charts:generate",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.identity.HasPermission(tt.permission); got != tt.want {
				t.Errorf("Identity.HasPermission(%q) = %v, want %v", tt.permission, got, tt.want)
			}
		})
	}
}

func TestIdentity_IsExpired(t *testing.T) {
	tests := []struct {
		name     string
		identity *Identity
		want     bool
	}{
		{
			name:     "zero expiry",
			identity: &Identity{},
			want:     false,
		},
		{
			name:     "expired",
			identity: &Identity{ExpiresAt: time.Now().Add(-time.Hour)},
			want:     true,
		},
		{
			name:     "not expired",
			identity: &Identity{ExpiresAt: time.Now().Add(time.Hour)},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.identity.IsExpired(); got != tt.want {
				t.Errorf("Identity.IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIdentity_IsAnonymous(t *testing.T) {
	tests := []struct {
		name     string
		identity *Identity
		want     bool
	}{
		{
			name:     "anonymous method",
			identity: &Identity{Principal: "anon", Method: AuthMethodAnonymous},
			want:     true,
		},
		{
			name:     "empty principal",
			identity: &Identity{Principal: "", Method: AuthMethodJWT},
			want:     true,
		},
		{
			name:     "named client",
			identity: &Identity{Principal: "astro-client", Method: AuthMethodJWT},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.identity.IsAnonymous(); got != tt.want {
				t.Errorf("Identity.IsAnonymous() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnonymousIdentity(t *testing.T) {
	id := AnonymousIdentity()

	if id.Principal != "anonymous" {
		t.Errorf("Principal = %v, want anonymous", id.Principal)
	}
	if id.Method != AuthMethodAnonymous {
		t.Errorf("Method = %v, want anonymous", id.Method)
	}
	if id.Claims == nil {
		t.Error("Claims map is nil, want initialized")
	}
	if !id.IsAnonymous() {
		t.Error("IsAnonymous() = false, want true")
	}
}

func TestAuthMethod_Constants(t *testing.T) {
	tests := []struct {
		method AuthMethod
		want   string
	}{
		{AuthMethodNone, "none"},
		{AuthMethodJWT, "jwt"},
		{AuthMethodAPIKey, "api_key"},
		{AuthMethodAnonymous, "anonymous"},
	}

	for _, tt := range tests {
		if string(tt.method) != tt.want {
			t.Errorf("AuthMethod = %v, want %v", string(tt.method), tt.want)
		}
	}
}
