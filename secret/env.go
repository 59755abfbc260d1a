package secret

import (
	"context"
	"fmt"
	"os"
)

// EnvProvider resolves references against the process environment.
// The ref is the variable name: secretref:env:ASTROCHART_JWT_SECRET.
type EnvProvider struct{}

// NewEnvProvider creates an environment-backed provider.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{}
}

// Name returns "env".
func (p *EnvProvider) Name() string {
	return "env"
}

// Resolve looks up the variable. A set-but-empty variable resolves to
// the empty string; a strict Resolver rejects that downstream.
func (p *EnvProvider) Resolve(_ context.Context, ref string) (string, error) {
	value, ok := os.LookupEnv(ref)
	if !ok {
		return "", fmt.Errorf("environment variable %q is not set", ref)
	}
	return value, nil
}

// Close is a no-op.
func (p *EnvProvider) Close() error {
	return nil
}

var _ Provider = (*EnvProvider)(nil)

func init() {
	_ = DefaultRegistry.Register("env", func(cfg map[string]any) (Provider, error) {
		return NewEnvProvider(), nil
	})
}
