package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"project_karcis/internal/interfaces"
)

// Sentinels live in the interfaces package so callers can match them without
// depending on the pgx-backed implementation.
var (
	ErrNotFound = interfaces.ErrNotFound
	ErrConflict = interfaces.ErrConflict
)

// isUniqueViolation reports whether err is a Postgres unique-constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
