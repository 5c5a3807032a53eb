// Package http provides the HTTP handler layer for the award selection API.
package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all award selection API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *SelectionHandler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	// API v1 group
	api := e.Group("/api/v1")

	// Selections group
	selections := api.Group("/selections")
	selections.POST("/round-trips", h.SelectRoundTrips)
	selections.POST("/single-trips", h.SelectSingleTrips)
}
