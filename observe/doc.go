// Package observe provides observability primitives for chart generation.
//
// It is a pure instrumentation library: no computation, no transport, no I/O
// beyond exporter setup. Consumers wire the observer into the orchestrator
// or server middleware.
package observe
