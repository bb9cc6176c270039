package loan

import (
	"strings"
	"time"

	"library-circulation/internal/pkg/errs"

	"github.com/google/uuid"
)

// Loan is a single borrow or reserve transaction moving through the
// circulation state machine. It is an audit record: terminal loans are
// retained, never deleted.
//
// holdingCopy tracks whether this loan currently owns a decrement of the
// book's available count. Transitions that release stock may only do so
// when it is set, which is what keeps ledger mutations paired.
type Loan struct {
	id              uuid.UUID
	bookID          uuid.UUID
	subjectID       uuid.UUID
	kind            Kind
	status          Status
	holdingCopy     bool
	requestedAt     time.Time
	dueAt           *time.Time
	completedAt     *time.Time
	approver        *uuid.UUID
	rejectionReason *string
}

// NewRequest creates a pending borrow or reserve request awaiting an
// approval decision. No stock is touched at this point.
func NewRequest(bookID, subjectID uuid.UUID, kind Kind, now time.Time) (*Loan, error) {
	if !kind.IsValid() {
		return nil, errs.ErrInvalidTransition
	}
	return &Loan{
		id:          uuid.New(),
		bookID:      bookID,
		subjectID:   subjectID,
		kind:        kind,
		status:      StatusPending,
		requestedAt: now,
	}, nil
}

// NewDirectBorrow creates a loan that is active from the start (the
// self-serve path). The caller must reserve a copy in the same transaction;
// the returned loan already accounts for it.
func NewDirectBorrow(bookID, subjectID uuid.UUID, now time.Time, loanPeriod time.Duration) *Loan {
	due := now.Add(loanPeriod)
	return &Loan{
		id:          uuid.New(),
		bookID:      bookID,
		subjectID:   subjectID,
		kind:        KindBorrow,
		status:      StatusActive,
		holdingCopy: true,
		requestedAt: now,
		dueAt:       &due,
	}
}

func Reconstruct(
	id, bookID, subjectID uuid.UUID,
	kind Kind,
	status Status,
	holdingCopy bool,
	requestedAt time.Time,
	dueAt, completedAt *time.Time,
	approver *uuid.UUID,
	rejectionReason *string,
) *Loan {
	return &Loan{
		id:              id,
		bookID:          bookID,
		subjectID:       subjectID,
		kind:            kind,
		status:          status,
		holdingCopy:     holdingCopy,
		requestedAt:     requestedAt,
		dueAt:           dueAt,
		completedAt:     completedAt,
		approver:        approver,
		rejectionReason: rejectionReason,
	}
}

// Activate approves a pending borrow. The caller must have reserved a copy
// first; the EffectReserve result tells it to.
func (l *Loan) Activate(approver uuid.UUID, now time.Time, loanPeriod time.Duration) (StockEffect, error) {
	if l.status != StatusPending || l.kind != KindBorrow {
		return EffectNone, errs.ErrInvalidTransition
	}
	due := now.Add(loanPeriod)
	l.status = StatusActive
	l.holdingCopy = true
	l.dueAt = &due
	l.approver = &approver
	return EffectReserve, nil
}

// ApproveReservation confirms a pending reservation. Stock is not touched
// until pickup.
func (l *Loan) ApproveReservation(approver uuid.UUID) (StockEffect, error) {
	if l.status != StatusPending || l.kind != KindReserve {
		return EffectNone, errs.ErrInvalidTransition
	}
	l.status = StatusApproved
	l.approver = &approver
	return EffectNone, nil
}

// Reject declines a pending request. A reason is mandatory.
func (l *Loan) Reject(approver uuid.UUID, reason string) (StockEffect, error) {
	if l.status != StatusPending {
		return EffectNone, errs.ErrInvalidTransition
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return EffectNone, errs.ErrReasonRequired
	}
	l.status = StatusRejected
	l.approver = &approver
	l.rejectionReason = &reason
	return EffectNone, nil
}

// Complete ends the loan cycle: a return for borrows, the end of the
// pickup cycle for reservations.
func (l *Loan) Complete(now time.Time) (StockEffect, error) {
	if l.status != StatusActive && l.status != StatusApproved {
		return EffectNone, errs.ErrInvalidTransition
	}
	l.status = StatusCompleted
	l.completedAt = &now

	if l.holdingCopy {
		l.holdingCopy = false
		return EffectRelease, nil
	}
	return EffectNone, nil
}

// Cancel withdraws a pending or active loan. A loan that already holds a
// copy ends as completed, so the cancel path cannot strand a decrement.
func (l *Loan) Cancel(now time.Time) (StockEffect, error) {
	if l.status != StatusPending && l.status != StatusActive {
		return EffectNone, errs.ErrInvalidTransition
	}

	if l.holdingCopy {
		l.status = StatusCompleted
		l.completedAt = &now
		l.holdingCopy = false
		return EffectRelease, nil
	}

	l.status = StatusCancelled
	l.completedAt = &now
	return EffectNone, nil
}

func (l *Loan) IsOverdue(now time.Time) bool {
	return l.status == StatusActive && l.dueAt != nil && now.After(*l.dueAt)
}

func (l *Loan) ID() uuid.UUID            { return l.id }
func (l *Loan) BookID() uuid.UUID        { return l.bookID }
func (l *Loan) SubjectID() uuid.UUID     { return l.subjectID }
func (l *Loan) Kind() Kind               { return l.kind }
func (l *Loan) Status() Status           { return l.status }
func (l *Loan) HoldingCopy() bool        { return l.holdingCopy }
func (l *Loan) RequestedAt() time.Time   { return l.requestedAt }
func (l *Loan) DueAt() *time.Time        { return l.dueAt }
func (l *Loan) CompletedAt() *time.Time  { return l.completedAt }
func (l *Loan) Approver() *uuid.UUID     { return l.approver }
func (l *Loan) RejectionReason() *string { return l.rejectionReason }
