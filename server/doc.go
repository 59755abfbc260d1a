// Package server exposes the chart service over HTTP.
//
// Routes:
//
//	POST /generate     compute (or fetch from cache) a natal chart
//	GET  /cache/:name  fetch a stored artifact, <key>.json or <key>.png
//	GET  /healthz      liveness
//	GET  /readyz       readiness (aggregated checkers)
//	GET  /health       detailed check results
//	GET  /health/:name one dependency checker by name
//	GET  /metrics      prometheus metrics
//
// Every request gets a request ID (from X-Request-ID or generated) that
// flows into logs and traces. An optional token-bucket limiter guards the
// edge, and an optional authenticator (API key or JWT bearer, composed)
// guards /generate. Run blocks until the context is cancelled, then drains
// in-flight requests within the configured shutdown timeout.
package server
