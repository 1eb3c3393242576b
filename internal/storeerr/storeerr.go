// Package storeerr converts document store failures into HTTP errors.
//
// It understands every driver behind the repository layer: the
// repository's own ErrUserNotFound, pgx/Postgres errors (refused or shut
// down servers are 503, canceled statements 504) and go-redis errors.
// Anything it does not recognise becomes a generic 500 so internals never
// leak to clients.
package storeerr
