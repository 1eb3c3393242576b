package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/geouser/internal/model"
	"github.com/deppfellow/geouser/internal/server"
	"github.com/deppfellow/geouser/internal/service"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

func (h *UserHandler) ListUsers(c echo.Context, req *model.ListUsersRequest) (*model.ListUsersResponse, error) {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &model.ListUsersResponse{Users: users}, nil
}

func (h *UserHandler) GetUser(c echo.Context, req *model.GetUserRequest) (*model.GetUserResponse, error) {
	user, err := h.userService.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &model.GetUserResponse{User: user}, nil
}

func (h *UserHandler) CreateUser(c echo.Context, req *model.CreateUserRequest) error {
	_, err := h.userService.Create(c.Request().Context(), req.Name, req.Zip)
	return err
}

func (h *UserHandler) UpdateUser(c echo.Context, req *model.UpdateUserRequest) error {
	return h.userService.Update(c.Request().Context(), req.ID, req.Name, req.Zip)
}

func (h *UserHandler) DeleteUser(c echo.Context, req *model.DeleteUserRequest) error {
	return h.userService.Delete(c.Request().Context(), req.ID)
}
