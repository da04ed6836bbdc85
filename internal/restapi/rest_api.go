package restapi

import (
	"net/http"
	"time"

	"campus.hyuabot.org/internal/app"
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

// Middleware wraps a handler with the standard chain: security headers,
// request logging, rate limiting, and response compression.
func (api *RestAPI) Middleware(next http.Handler) http.Handler {
	handler := CompressionMiddleware(next)
	if api.rateLimiter != nil {
		handler = api.rateLimiter.rateLimitHandler(handler)
	}
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return api.WithSecurityHeaders(handler)
}

// Shutdown releases background resources held by the API.
func (api *RestAPI) Shutdown() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
