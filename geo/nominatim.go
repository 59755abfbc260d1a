package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonwraymond/astrochart/resilience"
)

// NominatimConfig configures the HTTP geocoder.
type NominatimConfig struct {
	// BaseURL is the search endpoint.
	// Default: "https://nominatim.openstreetmap.org/search"
	BaseURL string

	// UserAgent identifies this service to the geocoder (required by the
	// public Nominatim usage policy). Default: "astrochart"
	UserAgent string

	// Timeout bounds a single upstream call. Default: 5 seconds.
	Timeout time.Duration

	// MaxAttempts is the internal retry budget for transient failures.
	// Definitive misses are never retried. Default: 3.
	MaxAttempts int

	// Client is the HTTP client to use. Default: http.DefaultClient.
	Client *http.Client
}

// Nominatim is a Geocoder backed by a Nominatim-compatible search endpoint.
type Nominatim struct {
	config NominatimConfig
	exec   *resilience.Executor
}

// NewNominatim creates the HTTP geocoder with its internal retry, timeout
// and circuit-breaker policies wired in.
func NewNominatim(config NominatimConfig) *Nominatim {
	if config.BaseURL == "" {
		config.BaseURL = "https://nominatim.openstreetmap.org/search"
	}
	if config.UserAgent == "" {
		config.UserAgent = "astrochart"
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.Client == nil {
		config.Client = http.DefaultClient
	}

	retry := resilience.NewRetry(resilience.RetryConfig{
		MaxAttempts:  config.MaxAttempts,
		InitialDelay: 200 * time.Millisecond,
		RetryIf: func(err error) bool {
			// A definitive miss is an answer, not a failure.
			return err != nil && !errors.Is(err, ErrPlaceNotFound)
		},
	})
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		MaxFailures:  5,
		ResetTimeout: 30 * time.Second,
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, ErrPlaceNotFound)
		},
	})

	return &Nominatim{
		config: config,
		exec: resilience.NewExecutor(
			resilience.WithCircuitBreaker(breaker),
			resilience.WithRetry(retry),
			resilience.WithTimeout(config.Timeout),
		),
	}
}

type nominatimHit struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a place name. Transient upstream failures are retried
// internally; the caller sees the final outcome only.
func (n *Nominatim) Geocode(ctx context.Context, place string) (Position, error) {
	var pos Position

	err := n.exec.Execute(ctx, func(ctx context.Context) error {
		q := url.Values{}
		q.Set("q", place)
		q.Set("format", "json")
		q.Set("limit", "1")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.config.BaseURL+"?"+q.Encode(), nil)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrGeocodeUnavailable, err)
		}
		req.Header.Set("User-Agent", n.config.UserAgent)

		resp, err := n.config.Client.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrGeocodeUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: status %d", ErrGeocodeUnavailable, resp.StatusCode)
		}

		var hits []nominatimHit
		if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
			return fmt.Errorf("%w: decode: %v", ErrGeocodeUnavailable, err)
		}
		if len(hits) == 0 {
			return ErrPlaceNotFound
		}

		lat, err := strconv.ParseFloat(hits[0].Lat, 64)
		if err != nil {
			return fmt.Errorf("%w: bad latitude %q", ErrGeocodeUnavailable, hits[0].Lat)
		}
		lon, err := strconv.ParseFloat(hits[0].Lon, 64)
		if err != nil {
			return fmt.Errorf("%w: bad longitude %q", ErrGeocodeUnavailable, hits[0].Lon)
		}

		pos = Position{Latitude: lat, Longitude: lon}
		return pos.Validate()
	})
	if err != nil {
		return Position{}, err
	}
	return pos, nil
}

var _ Geocoder = (*Nominatim)(nil)
