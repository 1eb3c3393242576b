// Package repository handles all interactions with the document store.
//
// The users collection maps store-generated ids to flat user documents.
// It is backed by a Redis hash, a PostgreSQL JSONB table or an in-process
// map, selected by config.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/geouser/internal/model"
)

// ErrUserNotFound is returned when no document exists under an id.
var ErrUserNotFound = errors.New("user not found")

// UserRepository persists user documents. Every method is a single atomic
// operation against the store; there are no cross-key transactions.
type UserRepository interface {
	// Create stores u under a newly generated id and sets u.ID.
	Create(ctx context.Context, u *model.User) error

	// GetByID returns ErrUserNotFound when id is absent.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// List returns a one-shot snapshot of the whole collection.
	List(ctx context.Context) (map[string]model.User, error)

	// Update applies patch in one write. An empty patch writes nothing.
	// Returns ErrUserNotFound when id is absent.
	Update(ctx context.Context, id string, patch model.UserPatch) error

	// Delete removes id. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}
