package api

import (
	"errors"
	"net/http"

	"library-circulation/internal/handler/httperr"
	"library-circulation/internal/infra"
	"library-circulation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// respondError maps the circulation error taxonomy onto HTTP statuses.
// Conflicts (duplicates, exclusions, bad transitions) are 409; exhausted
// stock and the borrow cap are policy refusals, also 409; a broken internal
// invariant is a 500 because the service state, not the request, is wrong.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrBookNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Book not found", nil)
	case errors.Is(err, errs.ErrLoanNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Loan not found", nil)
	case errors.Is(err, errs.ErrHoldNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Hold not found", nil)
	case infra.IsKind(err, infra.KindNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, errs.ErrOutOfStock):
		httperr.AbortWithError(c, http.StatusConflict, err, "No copies available", nil)
	case errors.Is(err, errs.ErrBorrowLimitExceeded):
		httperr.AbortWithError(c, http.StatusConflict, err, "Active loan limit reached", nil)
	case errors.Is(err, errs.ErrDuplicateLoan):
		httperr.AbortWithError(c, http.StatusConflict, err, "An open loan for this book already exists", nil)
	case errors.Is(err, errs.ErrDuplicateHold):
		httperr.AbortWithError(c, http.StatusConflict, err, "An open hold for this book already exists", nil)
	case errors.Is(err, errs.ErrHoldBorrowExclusion):
		httperr.AbortWithError(c, http.StatusConflict, err, "Subject already holds or borrows this book", nil)
	case errors.Is(err, errs.ErrBookAlreadyHeld):
		httperr.AbortWithError(c, http.StatusConflict, err, "Book is currently on loan to another subject", nil)
	case errors.Is(err, errs.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Loan is not in a state that allows this operation", nil)
	case errors.Is(err, errs.ErrInvalidHoldState):
		httperr.AbortWithError(c, http.StatusConflict, err, "Hold is not in a state that allows this operation", nil)
	case errors.Is(err, errs.ErrReasonRequired):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "A rejection reason is required", nil)
	case errors.Is(err, errs.ErrStoreUnavailable), infra.IsKind(err, infra.KindUnavailable):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Storage temporarily unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
