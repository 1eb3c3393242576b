package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/deppfellow/geouser/internal/model"
)

// MemoryUserRepository keeps the users collection in process memory.
// It backs the "memory" store driver and the service/handler tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.UserDocument
}

// NewMemoryUserRepository returns an empty in-memory repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]model.UserDocument),
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.users[id] = u.Document()
	u.ID = id

	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	u := doc.User(id)
	return &u, nil
}

func (r *MemoryUserRepository) List(_ context.Context) (map[string]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make(map[string]model.User, len(r.users))
	for id, doc := range r.users {
		users[id] = doc.User(id)
	}

	return users, nil
}

func (r *MemoryUserRepository) Update(_ context.Context, id string, patch model.UserPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}

	r.users[id] = patch.Apply(doc)
	return nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}
