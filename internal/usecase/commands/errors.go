package commands

import (
	"library-circulation/internal/infra"
	"library-circulation/internal/pkg/errs"
)

// translateRepoErr maps infrastructure error kinds onto the circulation
// taxonomy. InvariantViolation and Unavailable pass through marked, never
// swallowed; notFound names the entity the caller was addressing.
func translateRepoErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, notFound)
	case infra.IsKind(err, infra.KindOutOfStock):
		return errs.Mark(err, errs.ErrOutOfStock)
	case infra.IsKind(err, infra.KindInvariantViolated):
		return errs.Mark(err, errs.ErrInvariantViolation)
	case infra.IsKind(err, infra.KindUnavailable):
		return errs.Mark(err, errs.ErrStoreUnavailable)
	default:
		return errs.Mark(err, errs.ErrStoreUnavailable)
	}
}
