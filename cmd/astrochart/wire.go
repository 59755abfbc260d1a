package main

import (
	"context"
	"fmt"

	"github.com/jonwraymond/astrochart/auth"
	"github.com/jonwraymond/astrochart/cache"
	"github.com/jonwraymond/astrochart/chart"
	"github.com/jonwraymond/astrochart/config"
	"github.com/jonwraymond/astrochart/ephemeris"
	"github.com/jonwraymond/astrochart/geo"
	"github.com/jonwraymond/astrochart/health"
	"github.com/jonwraymond/astrochart/observe"
	"github.com/jonwraymond/astrochart/render"
)

// app holds the wired service graph shared by the serve, generate and
// sweep commands.
type app struct {
	cfg      *config.Config
	observer observe.Observer
	cache    *cache.Manager
	computer *chart.Orchestrator
	renderer *render.Renderer
	health   *health.Aggregator
	authn    auth.Authenticator
}

func wireApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	observer, err := observe.NewObserver(ctx, cfg.ObserveConfig(version))
	if err != nil {
		return nil, fmt.Errorf("wire observer: %w", err)
	}
	logger := observer.Logger()

	store, err := cache.NewFSStore(cache.FSStoreConfig{Dir: cfg.Cache.Dir})
	if err != nil {
		return nil, fmt.Errorf("wire cache store: %w", err)
	}
	manager, err := cache.NewManager(cache.ManagerConfig{
		Store: store,
		Policy: cache.Policy{
			TTL:           cfg.Cache.TTL,
			SweepInterval: cfg.Cache.SweepInterval,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("wire cache manager: %w", err)
	}

	geocoder := geo.NewNominatim(geo.NominatimConfig{
		BaseURL:   cfg.Geocoder.BaseURL + "/search",
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   cfg.Geocoder.Timeout,
	})
	timezones, err := geo.NewTZFResolver()
	if err != nil {
		return nil, fmt.Errorf("wire timezone resolver: %w", err)
	}
	provider := ephemeris.NewHTTPProvider(ephemeris.HTTPProviderConfig{
		BaseURL:       cfg.Ephemeris.BaseURL,
		Timeout:       cfg.Ephemeris.Timeout,
		MaxConcurrent: cfg.Ephemeris.MaxConcurrent,
	})

	orchestrator := chart.NewOrchestrator(chart.OrchestratorConfig{
		Geocoder:  geocoder,
		Timezones: timezones,
		Provider:  provider,
		Logger:    logger,
	})

	agg := health.NewAggregator()
	agg.Register("cache", health.NewCacheDirChecker(health.CacheDirCheckerConfig{Dir: cfg.Cache.Dir}))
	agg.Register("geocoder", health.NewUpstreamChecker(health.UpstreamCheckerConfig{
		Name: "geocoder",
		URL:  cfg.Geocoder.BaseURL,
	}))
	agg.Register("ephemeris", health.NewUpstreamChecker(health.UpstreamCheckerConfig{
		Name: "ephemeris",
		URL:  cfg.Ephemeris.BaseURL,
	}))

	return &app{
		cfg:      cfg,
		observer: observer,
		cache:    manager,
		computer: orchestrator,
		renderer: render.NewRenderer(render.Style{}),
		health:   agg,
		authn:    buildAuthenticator(cfg),
	}, nil
}

// buildAuthenticator assembles the optional request guard. API keys and a
// JWT bearer secret can both be configured; the composite accepts either.
func buildAuthenticator(cfg *config.Config) auth.Authenticator {
	if !cfg.Auth.Enabled {
		return nil
	}

	var authns []auth.Authenticator
	if len(cfg.Auth.APIKeys) > 0 {
		store := auth.NewMemoryAPIKeyStore()
		for _, entry := range cfg.Auth.APIKeys {
			_ = store.Add(&auth.APIKeyInfo{
				ID:        entry.Principal,
				KeyHash:   auth.HashAPIKey(entry.Key),
				Principal: entry.Principal,
				Roles:     entry.Roles,
			})
		}
		authns = append(authns, auth.NewAPIKeyAuthenticator(auth.APIKeyConfig{}, store))
	}
	if cfg.Auth.JWTSecret != "" {
		authns = append(authns, auth.NewJWTAuthenticator(
			auth.JWTConfig{},
			auth.NewStaticKeyProvider([]byte(cfg.Auth.JWTSecret)),
		))
	}
	if len(authns) == 0 {
		return nil
	}
	return auth.NewCompositeAuthenticator(authns...)
}

func (a *app) shutdown(ctx context.Context) {
	if a.observer != nil {
		_ = a.observer.Shutdown(ctx)
	}
}
