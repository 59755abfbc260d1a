package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonwraymond/astrochart/auth"
	"github.com/jonwraymond/astrochart/cache"
	"github.com/jonwraymond/astrochart/chart"
	"github.com/jonwraymond/astrochart/health"
	"github.com/jonwraymond/astrochart/observe"
	"github.com/jonwraymond/astrochart/render"
	"github.com/jonwraymond/astrochart/resilience"
)

// Computer produces a chart result for a validated request.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Compute must honor cancellation and deadlines.
// - Errors: failures use the chart/geo/ephemeris error taxonomy so the
//   transport can map them to statuses.
type Computer interface {
	Compute(ctx context.Context, req chart.Request) (*chart.Result, error)
}

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address. Default: ":8080".
	Addr string

	// RatePerSecond is the edge rate limit. Zero disables limiting.
	RatePerSecond float64

	// RateBurst is the token bucket capacity when limiting is enabled.
	// Default: ceil(RatePerSecond), minimum 1.
	RateBurst int

	// ShutdownTimeout bounds the graceful drain. Default: 10s.
	ShutdownTimeout time.Duration
}

// Dependencies are the collaborators a Server routes requests through.
// Computer, Cache and Renderer are required; the rest are optional.
type Dependencies struct {
	Computer      Computer
	Cache         *cache.Manager
	Renderer      *render.Renderer
	Observer      observe.Observer
	Health        *health.Aggregator
	Authenticator auth.Authenticator
}

// Server is the HTTP surface of the chart service.
type Server struct {
	config  Config
	deps    Dependencies
	mw      *observe.Middleware
	logger  observe.Logger
	engine  *gin.Engine
	handler http.Handler
	http    *http.Server
}

// New builds a Server and its routes.
func New(config Config, deps Dependencies) (*Server, error) {
	if deps.Computer == nil {
		return nil, ErrNilComputer
	}
	if deps.Cache == nil {
		return nil, ErrNilCache
	}
	if deps.Renderer == nil {
		return nil, ErrNilRenderer
	}
	if config.Addr == "" {
		config.Addr = ":8080"
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	logger := observe.NopLogger()
	var mw *observe.Middleware
	if deps.Observer != nil {
		logger = deps.Observer.Logger()
		m, err := observe.MiddlewareFromObserver(deps.Observer)
		if err != nil {
			return nil, err
		}
		mw = m
	}

	s := &Server{
		config: config,
		deps:   deps,
		mw:     mw,
		logger: logger,
	}
	s.engine = s.buildRouter()
	// Header copies land on the request context before gin runs, so the
	// auth middleware and audit logging read credentials the same way a
	// plain net/http handler would.
	s.handler = auth.WithAuthHeaders(s.engine)
	s.http = &http.Server{
		Addr:              config.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the routed HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())

	var limiter *resilience.RateLimiter
	if s.config.RatePerSecond > 0 {
		burst := s.config.RateBurst
		if burst <= 0 {
			burst = int(s.config.RatePerSecond)
			if burst < 1 {
				burst = 1
			}
		}
		limiter = resilience.NewRateLimiter(resilience.RateLimiterConfig{
			Rate:  s.config.RatePerSecond,
			Burst: burst,
		})
	}

	generate := r.Group("/")
	generate.Use(RateLimit(limiter))
	generate.Use(Authenticate(s.deps.Authenticator))
	generate.POST("/generate", s.handleGenerate)

	r.GET("/cache/:name", s.handleArtifact)

	r.GET("/healthz", gin.WrapF(health.LivenessHandler()))
	if s.deps.Health != nil {
		r.GET("/readyz", gin.WrapF(health.ReadinessHandler(s.deps.Health)))
		r.GET("/health", gin.WrapF(health.DetailedHandler(s.deps.Health)))
		r.GET("/health/:name", func(c *gin.Context) {
			health.SingleCheckHandler(s.deps.Health, c.Param("name"))(c.Writer, c.Request)
		})
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// Run serves until ctx is cancelled, then drains within ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "server listening",
		observe.Field{Key: "addr", Value: s.config.Addr},
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info(context.Background(), "server stopped")
	return nil
}
