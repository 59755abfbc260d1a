package config

import "errors"

// Sentinel errors for configuration loading.
var (
	// ErrReadConfig indicates the config file could not be read or parsed.
	ErrReadConfig = errors.New("config: read failed")

	// ErrInvalidConfig indicates the loaded configuration failed validation.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrSecretResolution indicates a secretref could not be resolved.
	ErrSecretResolution = errors.New("config: secret resolution failed")
)
