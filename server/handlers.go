package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonwraymond/astrochart/cache"
	"github.com/jonwraymond/astrochart/chart"
	"github.com/jonwraymond/astrochart/observe"
)

// generateResponse is the POST /generate success body. Data is the cached
// chart JSON verbatim, so identical requests return byte-identical data.
// Stored is false when the artifact pair could not be persisted; the chart
// in the body is still complete, but the image URL will 404 and identical
// requests will recompute.
type generateResponse struct {
	Key      string          `json:"key"`
	Data     json.RawMessage `json:"data"`
	ImageURL string          `json:"image_url"`
	Cached   bool            `json:"cached"`
	Stored   bool            `json:"stored"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req chart.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{
			Error:   "validation",
			Message: "request body must be JSON with name, date, time, place",
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{
			Error:   "validation",
			Message: err.Error(),
		})
		return
	}

	meta := observe.RequestMeta{
		ID:        c.GetString(contextKeyRequestID),
		Operation: "generate",
		CacheKey:  s.deps.Cache.Key(req.KeyFields()...),
	}

	var entry *cache.Entry
	var outcome cache.Outcome
	generate := func(ctx context.Context, meta observe.RequestMeta) (bool, error) {
		e, out, err := s.deps.Cache.GetOrCompute(ctx, func(ctx context.Context) ([]byte, []byte, error) {
			result, err := s.deps.Computer.Compute(ctx, req)
			if err != nil {
				return nil, nil, err
			}
			jsonBytes, err := json.Marshal(result)
			if err != nil {
				return nil, nil, err
			}
			imageBytes, err := s.deps.Renderer.Render(result)
			if err != nil {
				return nil, nil, err
			}
			return jsonBytes, imageBytes, nil
		}, req.KeyFields()...)
		if err != nil {
			return false, err
		}
		entry = e
		outcome = out
		return out.Cached, nil
	}
	if s.mw != nil {
		generate = s.mw.Wrap(generate)
	}

	if _, err := generate(c.Request.Context(), meta); err != nil {
		status, code := statusFor(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			message = "chart generation failed"
		}
		c.JSON(status, errorBody{Error: code, Message: message})
		return
	}

	c.JSON(http.StatusOK, generateResponse{
		Key:      entry.Key,
		Data:     json.RawMessage(entry.JSON),
		ImageURL: "/cache/" + entry.Key + ".png",
		Cached:   outcome.Cached,
		Stored:   outcome.Stored,
	})
}

func (s *Server) handleArtifact(c *gin.Context) {
	name := c.Param("name")

	var key, ext string
	switch {
	case strings.HasSuffix(name, ".json"):
		key, ext = strings.TrimSuffix(name, ".json"), "json"
	case strings.HasSuffix(name, ".png"):
		key, ext = strings.TrimSuffix(name, ".png"), "png"
	default:
		c.JSON(http.StatusNotFound, errorBody{
			Error:   "not_found",
			Message: "artifact names end in .json or .png",
		})
		return
	}
	if err := cache.ValidateKey(key); err != nil {
		c.JSON(http.StatusNotFound, errorBody{
			Error:   "not_found",
			Message: "malformed artifact key",
		})
		return
	}

	entry, ok := s.deps.Cache.Lookup(c.Request.Context(), key)
	if !ok {
		c.JSON(http.StatusNotFound, errorBody{
			Error:   "not_found",
			Message: "no artifact for key",
		})
		return
	}

	if ext == "json" {
		c.Data(http.StatusOK, "application/json", entry.JSON)
		return
	}
	c.Data(http.StatusOK, "image/png", entry.Image)
}
