package model

import (
	"github.com/deppfellow/geouser/internal/validation"
)

// Request bodies are accepted as JSON or url-encoded forms.

type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error {
	return nil
}

type ListUsersResponse struct {
	Users map[string]User `json:"users"`
}

type GetUserRequest struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (r *GetUserRequest) Validate() error {
	return validation.Struct(r)
}

type GetUserResponse struct {
	User *User `json:"user"`
}

type CreateUserRequest struct {
	Name string `json:"name" form:"name" validate:"required,notblank,max=255"`
	Zip  string `json:"zip" form:"zip" validate:"required,notblank,max=16"`
}

func (r *CreateUserRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateUserRequest carries optional fields; a missing or empty one is
// left unchanged.
type UpdateUserRequest struct {
	ID   string  `param:"id" json:"-" validate:"required"`
	Name *string `json:"name" form:"name" validate:"omitempty,max=255"`
	Zip  *string `json:"zip" form:"zip" validate:"omitempty,max=16"`
}

func (r *UpdateUserRequest) Validate() error {
	return validation.Struct(r)
}

type DeleteUserRequest struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (r *DeleteUserRequest) Validate() error {
	return validation.Struct(r)
}
