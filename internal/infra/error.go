package infra

import (
	"context"
	"errors"

	"library-circulation/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindOutOfStock         RepositoryErrorKind = "OUT_OF_STOCK"
	KindInvariantViolated  RepositoryErrorKind = "INVARIANT_VIOLATED"
	KindUnavailable        RepositoryErrorKind = "UNAVAILABLE"
)

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func WrapRepoErr(msg string, err error, kinds ...RepositoryErrorKind) error {
	kind := KindDBFailure
	if len(kinds) > 0 {
		kind = kinds[0]
	} else if k, ok := classify(err); ok {
		kind = k
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Postgres SQLSTATE classes that matter to the circulation core.
const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeCheckViolation      = "23514"
)

func classify(err error) (RepositoryErrorKind, bool) {
	if err == nil {
		return "", false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindUnavailable, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return KindDuplicateKey, true
		case pgErrCodeForeignKeyViolation:
			return KindForeignKeyViolated, true
		case pgErrCodeCheckViolation:
			// The schema backs the stock invariants with CHECK constraints;
			// tripping one means a code path skipped the conditional update.
			return KindInvariantViolated, true
		}
		// Class 08 - connection exceptions
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08" {
			return KindUnavailable, true
		}
	}

	if pgconn.Timeout(err) {
		return KindUnavailable, true
	}

	return "", false
}
