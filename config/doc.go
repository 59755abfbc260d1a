// Package config loads and validates process configuration.
//
// Configuration is layered: built-in defaults, an optional
// astrochart.yaml file, and ASTROCHART_* environment variables, each
// overriding the last. Credential fields may hold secretref values
// (see the secret package); they are resolved before validation so the
// rest of the process only ever sees plain values.
package config
