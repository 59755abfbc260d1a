package cache

import "time"

// Policy configures artifact retention.
type Policy struct {
	// TTL is how long a pair stays eligible for lookup hits.
	// If zero, pairs never expire and sweeps are no-ops.
	TTL time.Duration

	// SweepInterval is the minimum spacing between advisory sweeps.
	// If zero, a sweep may run on every request that finds no sweep
	// already in flight.
	SweepInterval time.Duration
}

// DefaultPolicy returns the default retention policy.
// TTL: 24 hours, SweepInterval: 10 minutes.
func DefaultPolicy() Policy {
	return Policy{
		TTL:           24 * time.Hour,
		SweepInterval: 10 * time.Minute,
	}
}

// KeepForeverPolicy returns a policy that never expires pairs.
func KeepForeverPolicy() Policy {
	return Policy{}
}

// Expires reports whether this policy ever removes pairs.
func (p Policy) Expires() bool {
	return p.TTL > 0
}

// Expired reports whether a pair created at t is past its TTL as of now.
func (p Policy) Expired(t, now time.Time) bool {
	if p.TTL <= 0 {
		return false
	}
	return now.Sub(t) > p.TTL
}
