package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Keyer derives a cache key from the literal request fields.
//
// Contract:
// - Determinism: the same fields in the same order always yield the same key.
// - Fidelity: fields are digested exactly as given. No trimming, case
//   folding, or other normalization, so "Kyiv" and "kyiv" are distinct keys.
type Keyer interface {
	Key(fields ...string) string
}

// DigestKeyer hashes the fields with SHA-256 using length prefixes, so that
// ("ab","c") and ("a","bc") never collide.
type DigestKeyer struct{}

var _ Keyer = DigestKeyer{}

// NewDigestKeyer returns the default Keyer.
func NewDigestKeyer() DigestKeyer { return DigestKeyer{} }

// Key returns the lowercase hex SHA-256 digest of the length-prefixed fields.
func (DigestKeyer) Key(fields ...string) string {
	h := sha256.New()
	for _, f := range fields {
		fmt.Fprintf(h, "%d:", len(f))
		h.Write([]byte(f))
	}
	return hex.EncodeToString(h.Sum(nil))
}
