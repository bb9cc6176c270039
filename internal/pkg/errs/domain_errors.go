package errs

import "errors"

// Circulation error taxonomy. Every facade operation returns either a record
// or exactly one of these, possibly wrapped with context.
var (
	// Not found
	ErrBookNotFound = errors.New("book not found")
	ErrLoanNotFound = errors.New("loan not found")
	ErrHoldNotFound = errors.New("hold not found")

	// Conflict
	ErrDuplicateLoan       = errors.New("subject already has an open loan for this book")
	ErrDuplicateHold       = errors.New("subject already has an active hold for this book")
	ErrHoldBorrowExclusion = errors.New("holds and borrows are mutually exclusive per subject and book")
	ErrBorrowLimitExceeded = errors.New("borrow limit exceeded")
	ErrBookAlreadyHeld     = errors.New("book is currently held by another subject")

	// Stock
	ErrOutOfStock = errors.New("no copies available")

	// Internal bug class: refused, never silently repaired.
	ErrInvariantViolation = errors.New("circulation invariant violated")

	// Durable store failure; caller may retry with backoff.
	ErrStoreUnavailable = errors.New("store unavailable")

	// State machine
	ErrInvalidTransition = errors.New("invalid loan state transition")
	ErrInvalidHoldState  = errors.New("invalid hold state transition")
	ErrReasonRequired    = errors.New("rejection reason required")
)
