// Package chart holds the natal chart data model and the computation
// orchestrator. A validated Request flows through geocoding, timezone
// resolution, the ephemeris provider (with house-system fallback), the
// house cusp resolver and the aspect detector, and comes out as an
// immutable Result ready for serialization and rendering.
package chart
