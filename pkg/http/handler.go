package http

import "github.com/labstack/echo/v4"

// Handler is implemented by components that mount routes on the server's
// Echo instance. The server calls it once during construction.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
