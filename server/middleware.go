package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jonwraymond/astrochart/auth"
	"github.com/jonwraymond/astrochart/resilience"
)

// requestIDHeader carries the caller-supplied or generated request ID.
const requestIDHeader = "X-Request-ID"

// contextKeyRequestID is the gin context key for the request ID.
const contextKeyRequestID = "request_id"

// RequestID assigns each request an ID, honoring a caller-supplied
// X-Request-ID and generating a UUID otherwise. The ID is echoed on the
// response and stored in the gin context for handlers and logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextKeyRequestID, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RateLimit rejects requests beyond the limiter's token budget with 429.
// A nil limiter disables edge limiting.
func RateLimit(rl *resilience.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl != nil && !rl.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody{
				Error:   "rate_limited",
				Message: "request rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// Authenticate guards a route group with the given authenticator. The
// authenticated identity is placed on the request context. A nil
// authenticator admits everything.
//
// Credentials come from the context populated by auth.WithAuthHeaders,
// with the raw request headers as fallback when the middleware runs
// outside that wrapper.
func Authenticate(authn auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authn == nil {
			c.Next()
			return
		}
		headers := auth.HeadersFromContext(c.Request.Context())
		if headers == nil {
			headers = c.Request.Header
		}
		req := &auth.AuthRequest{
			Headers:  headers,
			Resource: c.FullPath(),
		}
		if !authn.Supports(c.Request.Context(), req) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Error:   "unauthorized",
				Message: "missing credentials",
			})
			return
		}
		result, err := authn.Authenticate(c.Request.Context(), req)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{
				Error:   "internal",
				Message: "authentication backend failure",
			})
			return
		}
		if !result.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{
				Error:   "unauthorized",
				Message: "invalid credentials",
			})
			return
		}
		ctx := auth.WithIdentity(c.Request.Context(), result.Identity)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
