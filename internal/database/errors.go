package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Translate maps PostgreSQL constraint violations onto apperr kinds and
// returns any other error unchanged.
func Translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: duplicate value violates %s", apperr.ErrIntegrity, pgErr.ConstraintName)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: referenced record does not exist (%s)", apperr.ErrValidation, pgErr.ConstraintName)
	case codeCheckViolation:
		return fmt.Errorf("%w: value violates %s", apperr.ErrValidation, pgErr.ConstraintName)
	}

	return err
}
