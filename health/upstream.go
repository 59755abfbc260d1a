package health

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// UpstreamCheckerConfig configures an upstream reachability checker.
type UpstreamCheckerConfig struct {
	// Name identifies the upstream (for example "geocoder" or
	// "ephemeris").
	Name string

	// URL is probed with a GET request.
	URL string

	// Timeout bounds the probe. Default: 3 seconds.
	Timeout time.Duration

	// Client is the HTTP client to use. Default: http.DefaultClient.
	Client *http.Client
}

// UpstreamChecker probes an upstream collaborator over HTTP. Any
// response below 500 counts as reachable; geocoders commonly answer the
// probe path with 404 while being perfectly healthy.
type UpstreamChecker struct {
	config UpstreamCheckerConfig
}

// NewUpstreamChecker creates an upstream reachability checker.
func NewUpstreamChecker(config UpstreamCheckerConfig) *UpstreamChecker {
	if config.Name == "" {
		config.Name = "upstream"
	}
	if config.Timeout <= 0 {
		config.Timeout = 3 * time.Second
	}
	if config.Client == nil {
		config.Client = http.DefaultClient
	}
	return &UpstreamChecker{config: config}
}

// Name returns the name of this checker.
func (u *UpstreamChecker) Name() string {
	return u.config.Name
}

// Check probes the upstream.
func (u *UpstreamChecker) Check(ctx context.Context) Result {
	start := time.Now()
	err := u.Ping(ctx)
	elapsed := time.Since(start)

	details := map[string]any{
		"url":        u.config.URL,
		"latency_ms": elapsed.Milliseconds(),
	}

	if err != nil {
		return Unhealthy(
			fmt.Sprintf("%s unreachable", u.config.Name), err,
		).WithDetails(details)
	}
	return Healthy(
		fmt.Sprintf("%s reachable", u.config.Name),
	).WithDetails(details)
}

// Ping checks if the upstream is reachable.
func (u *UpstreamChecker) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, u.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.config.URL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCheckFailed, err)
	}

	resp, err := u.config.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCheckFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrCheckFailed, resp.StatusCode)
	}
	return nil
}

var _ PingChecker = (*UpstreamChecker)(nil)
