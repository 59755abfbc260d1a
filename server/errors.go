package server

import (
	"errors"
	"net/http"

	"github.com/jonwraymond/astrochart/chart"
	"github.com/jonwraymond/astrochart/geo"
	"github.com/jonwraymond/astrochart/resilience"
)

// Package-level sentinel errors.
var (
	// ErrNilComputer is returned by New when no chart computer is provided.
	ErrNilComputer = errors.New("server: chart computer is nil")

	// ErrNilCache is returned by New when no cache manager is provided.
	ErrNilCache = errors.New("server: cache manager is nil")

	// ErrNilRenderer is returned by New when no renderer is provided.
	ErrNilRenderer = errors.New("server: renderer is nil")
)

// errorBody is the uniform JSON error shape. Message never carries stack
// detail or upstream response bodies.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusFor maps a generation failure to an HTTP status and a stable error
// code. Caller mistakes are 4xx; everything downstream is a plain 500.
func statusFor(err error) (int, string) {
	switch {
	case chart.IsValidation(err):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, geo.ErrPlaceNotFound):
		return http.StatusBadRequest, "place_not_found"
	case errors.Is(err, resilience.ErrRateLimitExceeded):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, chart.ErrConstruction):
		return http.StatusInternalServerError, "chart_construction"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
