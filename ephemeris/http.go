package ephemeris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jonwraymond/astrochart/astro"
	"github.com/jonwraymond/astrochart/resilience"
)

// HTTPProviderConfig configures the HTTP ephemeris adapter.
type HTTPProviderConfig struct {
	// BaseURL is the provider root; the chart endpoint is BaseURL + "/chart".
	BaseURL string

	// Timeout bounds a single computation call. Default: 10 seconds.
	Timeout time.Duration

	// MaxConcurrent caps in-flight calls to the provider. Ephemeris
	// computation is expensive upstream; flooding it converts one slow
	// request into many. Default: 8.
	MaxConcurrent int

	// Client is the HTTP client to use. Default: http.DefaultClient.
	Client *http.Client
}

// HTTPProvider adapts a JSON-over-HTTP ephemeris service to Provider.
type HTTPProvider struct {
	config HTTPProviderConfig
	exec   *resilience.Executor
}

// NewHTTPProvider creates the adapter.
func NewHTTPProvider(config HTTPProviderConfig) *HTTPProvider {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 8
	}
	if config.Client == nil {
		config.Client = http.DefaultClient
	}
	bulkhead := resilience.NewBulkhead(resilience.BulkheadConfig{
		MaxConcurrent: config.MaxConcurrent,
		MaxWait:       config.Timeout,
	})
	return &HTTPProvider{
		config: config,
		exec: resilience.NewExecutor(
			resilience.WithBulkhead(bulkhead),
			resilience.WithTimeout(config.Timeout),
		),
	}
}

type chartRequestBody struct {
	DateTime       string  `json:"datetime"`
	UTCOffsetHours float64 `json:"utc_offset_hours"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	HouseSystem    string  `json:"house_system,omitempty"`
}

type chartResponseBody struct {
	Angles map[string]float64 `json:"angles"`
	Bodies map[string]float64 `json:"bodies"`
	Cusps  map[string]float64 `json:"cusps"`
}

// Compute posts the Spec to the provider and decodes the chart. A 422
// answer maps to ErrUnsupportedSystem so the caller can fall through its
// house-system order; any other non-200 answer is ErrUnavailable.
func (p *HTTPProvider) Compute(ctx context.Context, spec Spec) (*Chart, error) {
	var chart *Chart

	err := p.exec.Execute(ctx, func(ctx context.Context) error {
		body, err := json.Marshal(chartRequestBody{
			DateTime:       spec.Local.Format("2006-01-02T15:04:05"),
			UTCOffsetHours: spec.OffsetHours,
			Latitude:       spec.Latitude,
			Longitude:      spec.Longitude,
			HouseSystem:    string(spec.System),
		})
		if err != nil {
			return fmt.Errorf("%w: encode: %v", ErrUnavailable, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/chart", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := p.config.Client.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
		case http.StatusUnprocessableEntity:
			return fmt.Errorf("%w: %q", ErrUnsupportedSystem, spec.System)
		default:
			return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}

		var decoded chartResponseBody
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
		}

		angles := make(map[astro.ChartAngle]float64, len(decoded.Angles))
		for k, v := range decoded.Angles {
			angles[astro.ChartAngle(k)] = v
		}
		bodies := make(map[astro.Body]float64, len(decoded.Bodies))
		for k, v := range decoded.Bodies {
			bodies[astro.Body(k)] = v
		}
		cusps := make(map[int]float64, len(decoded.Cusps))
		for k, v := range decoded.Cusps {
			idx, err := strconv.Atoi(k)
			if err != nil || idx < 1 || idx > 12 {
				continue
			}
			cusps[idx] = v
		}

		chart = NewChart(spec.System, angles, bodies, cusps)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chart, nil
}

var _ Provider = (*HTTPProvider)(nil)
