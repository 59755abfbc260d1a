// Package auth provides authentication primitives for the chart API.
//
// It supports API keys and JWT bearer tokens; the composite
// authenticator accepts either on the same endpoint. The package is
// protocol-agnostic and can be used with any transport layer.
package auth
