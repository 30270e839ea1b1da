package restapi

import (
	"net/http"
	"time"

	"pulseinsights.org/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Handler mounts the routes on a new mux and wraps it in the middleware
// chain: security headers, request id, request logging and compression.
// Rate limiting is applied per route after the API key check.
func (api *RestAPI) Handler() http.Handler {
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	return api.WithMiddleware(mux)
}

// WithMiddleware wraps handler in the shared middleware chain.
func (api *RestAPI) WithMiddleware(handler http.Handler) http.Handler {
	handler = CompressionMiddleware(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = RequestIDMiddleware(handler)
	return api.WithSecurityHeaders(handler)
}

// Shutdown stops background work owned by the API.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
