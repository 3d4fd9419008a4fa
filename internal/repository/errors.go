package repository

import (
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

const (
	pgUniqueViolation = "23505"
	// raised when an id is not a valid uuid; no row can match it
	pgInvalidText = "22P02"
)

// mapPgError classifies driver errors into repository sentinels and wraps
// anything else with the failing operation.
func mapPgError(err error, op string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.Wrapf(ErrDuplicate, "%s: %s", op, pgErr.ConstraintName)
		case pgInvalidText:
			return ErrNotFound
		}
	}
	return errors.Wrap(err, op)
}
