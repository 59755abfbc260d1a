// Package cache memoizes chart computations as content-addressed artifact
// pairs: one JSON document and one rendered image per cache key.
//
// It provides a Store interface with filesystem and in-memory
// implementations, SHA-256 key derivation over the literal request fields,
// TTL policies with an advisory sweep, and a Manager that deduplicates
// concurrent computations per key via singleflight.
package cache
