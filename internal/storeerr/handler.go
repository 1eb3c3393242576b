package storeerr

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/deppfellow/geouser/internal/errs"
	"github.com/deppfellow/geouser/internal/repository"
)

const unavailableMessage = "The user store is unavailable"

func handlePgError(pgerr *pgconn.PgError) error {
	sqlErr := ConvertPgError(pgerr)

	switch sqlErr.Code {
	case ConnectionFailure, Unavailable:
		return errs.NewServiceUnavailableError(unavailableMessage)

	case QueryCanceled:
		return errs.NewGatewayTimeoutError()

	default:
		return errs.NewInternalServerError()
	}
}

// HandleError converts a store error into an *errs.HTTPError.
//
//   - *errs.HTTPError: returned unchanged
//   - repository.ErrUserNotFound, pgx.ErrNoRows, redis.Nil: 404
//   - *pgconn.ConnectError, unavailable or refused Postgres: 503
//   - canceled statement, context deadline: 504
//   - anything else: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, pgx.ErrNoRows),
		errors.Is(err, redis.Nil):
		return errs.NewNotFoundError("User not found", true, nil)
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return handlePgError(pgerr)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return errs.NewServiceUnavailableError(unavailableMessage)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errs.NewGatewayTimeoutError()
	}

	return errs.NewInternalServerError()
}
