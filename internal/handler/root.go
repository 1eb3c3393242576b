package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/geouser/internal/server"
)

type RootHandler struct {
	Handler
}

func NewRootHandler(s *server.Server) *RootHandler {
	return &RootHandler{
		Handler: NewHandler(s),
	}
}

// Welcome greets with the configured company name.
func (h *RootHandler) Welcome(c echo.Context) error {
	return c.String(http.StatusOK, fmt.Sprintf("Welcome to the %s interview!", h.server.Config.Primary.CompanyName))
}
