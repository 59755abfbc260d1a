package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonwraymond/astrochart/observe"
	"github.com/jonwraymond/astrochart/secret"
)

// Config is the full process configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Geocoder  GeocoderConfig  `mapstructure:"geocoder"`
	Ephemeris EphemerisConfig `mapstructure:"ephemeris"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Auth      AuthConfig      `mapstructure:"auth"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `mapstructure:"addr" validate:"required"`

	// RatePerSecond limits inbound generation requests. Zero disables
	// the limiter.
	RatePerSecond float64 `mapstructure:"rate_per_second" validate:"gte=0"`

	// RateBurst is the burst allowance when the limiter is active.
	RateBurst int `mapstructure:"rate_burst" validate:"gte=0"`

	// ShutdownTimeout bounds the graceful drain.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CacheConfig configures the artifact cache.
type CacheConfig struct {
	// Dir holds the JSON and PNG artifact pairs.
	Dir string `mapstructure:"dir" validate:"required"`

	// TTL is how long artifacts stay servable. Zero keeps them forever.
	TTL time.Duration `mapstructure:"ttl"`

	// SweepInterval gates the advisory background sweep.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// GeocoderConfig configures the place lookup upstream.
type GeocoderConfig struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// EphemerisConfig configures the chart computation upstream.
type EphemerisConfig struct {
	BaseURL       string        `mapstructure:"base_url" validate:"required,url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxConcurrent int           `mapstructure:"max_concurrent" validate:"gte=0"`
}

// TelemetryConfig configures tracing, metrics, and logging.
type TelemetryConfig struct {
	ServiceName     string  `mapstructure:"service_name" validate:"required"`
	TracingExporter string  `mapstructure:"tracing_exporter" validate:"oneof=stdout otlp none"`
	SamplePct       float64 `mapstructure:"sample_pct" validate:"gte=0,lte=1"`
	MetricsExporter string  `mapstructure:"metrics_exporter" validate:"oneof=stdout otlp prometheus none"`
	LogLevel        string  `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// APIKeyEntry registers one API key principal. Key may be a secretref.
type APIKeyEntry struct {
	Key       string   `mapstructure:"key" validate:"required"`
	Principal string   `mapstructure:"principal" validate:"required"`
	Roles     []string `mapstructure:"roles"`
}

// AuthConfig configures optional request authentication.
type AuthConfig struct {
	// Enabled turns authentication on for the generate endpoint.
	Enabled bool `mapstructure:"enabled"`

	// JWTSecret signs and verifies bearer tokens. May be a secretref.
	JWTSecret string `mapstructure:"jwt_secret"`

	// APIKeys are the registered keys.
	APIKeys []APIKeyEntry `mapstructure:"api_keys"`
}

// Load reads configuration from the given file (optional), environment
// variables with the ASTROCHART_ prefix, and built-in defaults, in
// ascending precedence of default < file < env. Secret references in
// credential fields are resolved before validation.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("astrochart")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/astrochart")
	}

	v.SetEnvPrefix("ASTROCHART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
		}
		// No file is fine; defaults and env carry the config.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	if err := cfg.resolveSecrets(context.Background()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_per_second", 50.0)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("cache.dir", "./cache")
	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.sweep_interval", 10*time.Minute)

	v.SetDefault("geocoder.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoder.timeout", 10*time.Second)

	v.SetDefault("ephemeris.base_url", "http://localhost:8100")
	v.SetDefault("ephemeris.timeout", 10*time.Second)
	v.SetDefault("ephemeris.max_concurrent", 8)

	v.SetDefault("telemetry.service_name", "astrochart")
	v.SetDefault("telemetry.tracing_exporter", "none")
	v.SetDefault("telemetry.sample_pct", 1.0)
	v.SetDefault("telemetry.metrics_exporter", "prometheus")
	v.SetDefault("telemetry.log_level", "info")
}

// resolveSecrets runs the secretref resolution pass over credential
// fields. Non-credential fields never pass through the resolver, plain
// values with `$` in them stay untouched.
func (c *Config) resolveSecrets(ctx context.Context) error {
	resolver := secret.NewResolver(true, secret.NewEnvProvider())

	if strings.HasPrefix(c.Auth.JWTSecret, "secretref:") {
		resolved, err := resolver.ResolveValue(ctx, c.Auth.JWTSecret)
		if err != nil {
			return fmt.Errorf("%w: jwt_secret: %v", ErrSecretResolution, err)
		}
		c.Auth.JWTSecret = resolved
	}

	for i := range c.Auth.APIKeys {
		if !strings.HasPrefix(c.Auth.APIKeys[i].Key, "secretref:") {
			continue
		}
		resolved, err := resolver.ResolveValue(ctx, c.Auth.APIKeys[i].Key)
		if err != nil {
			return fmt.Errorf("%w: api_keys[%d]: %v", ErrSecretResolution, i, err)
		}
		c.Auth.APIKeys[i].Key = resolved
	}

	return nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.Auth.Enabled && c.Auth.JWTSecret == "" && len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("%w: auth enabled without jwt_secret or api_keys", ErrInvalidConfig)
	}

	return nil
}

// ObserveConfig maps the telemetry section onto the observe package.
func (c *Config) ObserveConfig(version string) observe.Config {
	return observe.Config{
		ServiceName: c.Telemetry.ServiceName,
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:   c.Telemetry.TracingExporter != "none",
			Exporter:  c.Telemetry.TracingExporter,
			SamplePct: c.Telemetry.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.Telemetry.MetricsExporter != "none",
			Exporter: c.Telemetry.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   c.Telemetry.LogLevel,
		},
	}
}

var validate = validator.New()
