// Package ephemeris defines the contract with the ephemeris collaborator:
// given a local instant, a fixed UTC offset and a geographic position, the
// provider returns ecliptic longitudes for celestial bodies, the chart
// angles and house cusps under a requested house-division system.
//
// Providers may return partial data. Missing bodies, angles or cusps are
// reported as absent rather than as errors; only whole-chart construction
// failures and unsupported house systems error out, which drives the
// orchestrator's fallback chain.
package ephemeris
