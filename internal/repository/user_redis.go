package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/deppfellow/geouser/internal/model"
)

// maxUpdateRetries bounds compare-and-set retries of Update. A retry only
// happens when another write to the same id landed in between.
const maxUpdateRetries = 16

// casDocument replaces one hash field only if it still holds the value read
// by the caller. Returns 1 on success, 0 on a lost race and -1 when the
// field is gone.
var casDocument = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], ARGV[1])
if not current then
	return -1
end
if current ~= ARGV[2] then
	return 0
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[3])
return 1
`)

// errUpdateConflict is returned when Update keeps losing races on one id.
var errUpdateConflict = errors.New("concurrent updates kept conflicting")

// RedisUserRepository keeps the users collection in a single Redis hash:
// field = user id, value = JSON encoded model.UserDocument.
type RedisUserRepository struct {
	client *redis.Client
	key    string
}

// NewRedisUserRepository returns a repository over the hash named key.
func NewRedisUserRepository(client *redis.Client, key string) *RedisUserRepository {
	return &RedisUserRepository{
		client: client,
		key:    key,
	}
}

func (r *RedisUserRepository) Create(ctx context.Context, u *model.User) error {
	doc, err := json.Marshal(u.Document())
	if err != nil {
		return fmt.Errorf("failed to encode user document: %w", err)
	}

	id := uuid.NewString()

	ok, err := r.client.HSetNX(ctx, r.key, id, doc).Result()
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if !ok {
		return fmt.Errorf("failed to create user: id %s already taken", id)
	}

	u.ID = id
	return nil
}

func (r *RedisUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	raw, err := r.client.HGet(ctx, r.key, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}

	u := doc.User(id)
	return &u, nil
}

func (r *RedisUserRepository) List(ctx context.Context) (map[string]model.User, error) {
	all, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make(map[string]model.User, len(all))
	for id, raw := range all {
		doc, err := decodeDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", id, err)
		}
		users[id] = doc.User(id)
	}

	return users, nil
}

// Update reads the document, applies patch and writes the merged document
// back with casDocument. Only a concurrent write or delete of the same id
// can make the write retry; other records in the hash never interfere.
func (r *RedisUserRepository) Update(ctx context.Context, id string, patch model.UserPatch) error {
	for i := 0; i < maxUpdateRetries; i++ {
		raw, err := r.client.HGet(ctx, r.key, id).Result()
		if errors.Is(err, redis.Nil) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update user %s: %w", id, err)
		}

		if patch.IsEmpty() {
			return nil
		}

		doc, err := decodeDocument(raw)
		if err != nil {
			return fmt.Errorf("user %s: %w", id, err)
		}

		encoded, err := json.Marshal(patch.Apply(doc))
		if err != nil {
			return fmt.Errorf("failed to encode user document: %w", err)
		}

		res, err := casDocument.Run(ctx, r.client, []string{r.key}, id, raw, encoded).Int()
		if err != nil {
			return fmt.Errorf("failed to update user %s: %w", id, err)
		}

		switch res {
		case 1:
			return nil
		case -1:
			return ErrUserNotFound
		}
	}

	return fmt.Errorf("failed to update user %s: %w", id, errUpdateConflict)
}

func (r *RedisUserRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.HDel(ctx, r.key, id).Err(); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}

func decodeDocument(raw string) (model.UserDocument, error) {
	var doc model.UserDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return doc, fmt.Errorf("failed to decode user document: %w", err)
	}
	return doc, nil
}
