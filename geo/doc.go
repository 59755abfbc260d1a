// Package geo wraps the two location collaborators: the geocoding service
// that turns a free-text place into coordinates, and the timezone resolver
// that turns coordinates into an IANA zone identifier.
//
// Both are specified as small interfaces. The HTTP geocoder runs its calls
// through a resilience executor (retry with backoff, bounded timeout,
// circuit breaker); the timezone resolver never fails and falls back to UTC.
package geo
