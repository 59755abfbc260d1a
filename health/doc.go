// Package health reports the readiness of the chart service and its
// collaborators.
//
// A Checker is any component that can report its health status. The
// Status type represents the health state: Healthy, Degraded, or
// Unhealthy. The service registers a checker per concern: the artifact
// cache directory, the geocoder, and the ephemeris provider.
//
// # Basic Usage
//
//	cacheCheck := health.NewCacheDirChecker(health.CacheDirCheckerConfig{
//	    Dir: "/var/lib/astrochart/cache",
//	})
//
//	result := cacheCheck.Check(ctx)
//	if result.Status == health.StatusUnhealthy {
//	    log.Printf("cache check failed: %s", result.Message)
//	}
//
// # Aggregating Health Checks
//
// Use Aggregator to combine multiple health checks into a single
// composite check:
//
//	agg := health.NewAggregator()
//	agg.Register("cache", cacheChecker)
//	agg.Register("geocoder", geoChecker)
//	agg.Register("ephemeris", ephemerisChecker)
//
//	results := agg.CheckAll(ctx)
//	overall := agg.OverallStatus(results)
//
// # HTTP Endpoints
//
// The package provides HTTP handlers for common probe patterns:
//
//	// Liveness probe (for Kubernetes)
//	http.Handle("/healthz", health.LivenessHandler())
//
//	// Readiness probe with component checks
//	http.Handle("/readyz", health.ReadinessHandler(aggregator))
//
//	// Detailed health status
//	http.Handle("/health", health.DetailedHandler(aggregator))
package health
