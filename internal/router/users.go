package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/geouser/internal/handler"
)

func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	users := r.Group("/users")

	users.GET("", handler.Handle(h.User.Handler, h.User.ListUsers, http.StatusOK))
	users.POST("/new", handler.HandleNoContent(h.User.Handler, h.User.CreateUser, http.StatusCreated))
	users.GET("/:id", handler.Handle(h.User.Handler, h.User.GetUser, http.StatusOK))
	users.PUT("/:id", handler.HandleNoContent(h.User.Handler, h.User.UpdateUser, http.StatusCreated))
	users.DELETE("/:id", handler.HandleNoContent(h.User.Handler, h.User.DeleteUser, http.StatusOK))
}
