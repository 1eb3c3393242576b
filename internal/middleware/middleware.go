// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request logging, CORS, rate limiting, tracing and panic
// recovery, and funnel every error into one JSON error shape.
package middleware
