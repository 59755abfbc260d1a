// Package astro provides the pure geometric core for natal chart
// computation: angle normalization, sexagesimal conversion, the body and
// chart-angle catalog, aspect detection, and the house cusp fallback chain.
//
// The package performs no I/O. Aspect catalogs and house origins are passed
// in explicitly so alternate tables can be used in tests.
package astro
