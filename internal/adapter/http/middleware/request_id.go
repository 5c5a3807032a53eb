// Package middleware provides HTTP middleware for cross-cutting concerns.
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader carries the correlation ID in and out of the API.
	RequestIDHeader = "X-Request-ID"
	// requestIDKey is the echo-context key the ID is stashed under.
	requestIDKey = "request_id"
)

// RequestID tags every selection request with a correlation ID. A caller
// supplying its own X-Request-ID keeps it; otherwise a UUID is minted. The
// ID rides the echo context into the request logger and goes back out on
// the response so upstream failures can be chased across logs.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Request().Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = uuid.New().String()
			}

			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(RequestIDHeader, reqID)

			return next(c)
		}
	}
}

// GetRequestID reads the correlation ID off the echo context, empty when
// the RequestID middleware has not run.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(requestIDKey).(string); ok {
		return id
	}
	return ""
}
