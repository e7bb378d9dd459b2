package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateEmail is returned when a user write collides with an existing email.
var ErrDuplicateEmail = errors.New("email already registered")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// userWriteError maps the users.email unique index to ErrDuplicateEmail.
func userWriteError(err error) error {
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}
