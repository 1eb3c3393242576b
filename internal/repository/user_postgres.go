package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deppfellow/geouser/internal/model"
)

// PostgresUserRepository keeps each user document as a JSONB row of the
// users table (see database/migrations).
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository returns a repository over pool.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *model.User) error {
	doc, err := json.Marshal(u.Document())
	if err != nil {
		return fmt.Errorf("failed to encode user document: %w", err)
	}

	var id string
	err = r.pool.QueryRow(ctx,
		`INSERT INTO users (doc) VALUES ($1::jsonb) RETURNING id::text`,
		string(doc),
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	u.ID = id
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if !isUUID(id) {
		return nil, ErrUserNotFound
	}

	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT doc FROM users WHERE id = $1::uuid`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}

	doc, err := decodeDocument(string(raw))
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}

	u := doc.User(id)
	return &u, nil
}

func (r *PostgresUserRepository) List(ctx context.Context) (map[string]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id::text, doc FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make(map[string]model.User)
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		doc, err := decodeDocument(string(raw))
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", id, err)
		}
		users[id] = doc.User(id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Update merges the patch into the stored document with the JSONB
// concatenation operator, so the whole patch lands in a single statement.
func (r *PostgresUserRepository) Update(ctx context.Context, id string, patch model.UserPatch) error {
	if !isUUID(id) {
		return ErrUserNotFound
	}

	if patch.IsEmpty() {
		var exists bool
		err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1::uuid)`, id).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check user %s: %w", id, err)
		}
		if !exists {
			return ErrUserNotFound
		}
		return nil
	}

	fields, err := json.Marshal(patch.Fields())
	if err != nil {
		return fmt.Errorf("failed to encode user patch: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET doc = doc || $2::jsonb, updated_at = now() WHERE id = $1::uuid`,
		id, string(fields),
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1::uuid`, id); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}

// isUUID guards the ::uuid casts; a malformed id can never exist.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
