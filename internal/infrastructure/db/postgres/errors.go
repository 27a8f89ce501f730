package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baechuer/vidshare/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapErr turns driver errors into AppErrors. entity names the row kind in messages.
func mapErr(err error, entity string) error {
	if err == nil {
		return nil
	}
	var ae *domain.AppError
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound(entity + " not found")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &domain.AppError{Code: domain.CodeConflict, Message: entity + " already exists", Err: err}
		case pgForeignKeyViolation:
			return &domain.AppError{Code: domain.CodeNotFound, Message: "referenced record not found", Err: err}
		}
	}
	return domain.ErrInternal("storage failure", err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
