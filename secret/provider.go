package secret

import "context"

// Provider resolves secret material by reference string, for example the
// JWT signing key named by ASTROCHART_JWT_SECRET.
//
// Contract:
//   - Implementations must be safe for concurrent use.
//   - Resolved values and refs must never be logged.
//   - Resolve honors ctx for providers that reach the network.
type Provider interface {
	Name() string
	Resolve(ctx context.Context, ref string) (string, error)
	Close() error
}
