// Package secret provides a small, dependency-light secret resolution layer.
//
// It supports:
//   - Strict environment expansion (see ExpandEnvStrict)
//   - Pluggable secret providers (see Provider + Registry)
//   - Resolving secret references in configuration values (see Resolver)
//
// References use the prefix "secretref:":
//   - Full value:  secretref:env:ASTROCHART_JWT_SECRET
//   - Inline use:  Bearer secretref:env:ASTROCHART_API_TOKEN
//
// The server's JWT signing key and registered API keys travel through
// this layer so config files never hold the secret material directly.
package secret
