package hold

import (
	"time"

	"library-circulation/internal/pkg/errs"

	"github.com/google/uuid"
)

// Hold is a waitlist entry for a subject awaiting a copy of a book.
// position is meaningful only while the hold is active; the queue keeps
// active positions contiguous from 1.
type Hold struct {
	id        uuid.UUID
	bookID    uuid.UUID
	subjectID uuid.UUID
	position  int32
	status    Status
	placedAt  time.Time
	expiresAt time.Time
	readyAt   *time.Time
}

func NewHold(bookID, subjectID uuid.UUID, position int32, now time.Time, lifetime time.Duration) (*Hold, error) {
	if position < 1 {
		return nil, errs.ErrInvariantViolation
	}
	return &Hold{
		id:        uuid.New(),
		bookID:    bookID,
		subjectID: subjectID,
		position:  position,
		status:    StatusActive,
		placedAt:  now,
		expiresAt: now.Add(lifetime),
	}, nil
}

func Reconstruct(
	id, bookID, subjectID uuid.UUID,
	position int32,
	status Status,
	placedAt, expiresAt time.Time,
	readyAt *time.Time,
) *Hold {
	return &Hold{
		id:        id,
		bookID:    bookID,
		subjectID: subjectID,
		position:  position,
		status:    status,
		placedAt:  placedAt,
		expiresAt: expiresAt,
		readyAt:   readyAt,
	}
}

// MarkReady promotes the hold when a copy frees up. The pickup window
// replaces the original expiry.
func (h *Hold) MarkReady(now time.Time, pickupWindow time.Duration) error {
	if h.status != StatusActive {
		return errs.ErrInvalidHoldState
	}
	h.status = StatusReady
	h.readyAt = &now
	h.expiresAt = now.Add(pickupWindow)
	return nil
}

func (h *Hold) MarkFulfilled() error {
	if h.status != StatusReady {
		return errs.ErrInvalidHoldState
	}
	h.status = StatusFulfilled
	return nil
}

func (h *Hold) Cancel() error {
	if !h.status.IsOpen() {
		return errs.ErrInvalidHoldState
	}
	h.status = StatusCancelled
	return nil
}

// Expire transitions a stale hold. It is a no-op error if the hold is not
// past its expiry; batch sweeps filter first, this is the safety check.
func (h *Hold) Expire(now time.Time) error {
	if !h.status.IsOpen() {
		return errs.ErrInvalidHoldState
	}
	if now.Before(h.expiresAt) {
		return errs.ErrInvalidHoldState
	}
	h.status = StatusExpired
	return nil
}

func (h *Hold) IsStale(now time.Time) bool {
	return h.status.IsOpen() && !now.Before(h.expiresAt)
}

func (h *Hold) ID() uuid.UUID        { return h.id }
func (h *Hold) BookID() uuid.UUID    { return h.bookID }
func (h *Hold) SubjectID() uuid.UUID { return h.subjectID }
func (h *Hold) Position() int32      { return h.position }
func (h *Hold) Status() Status       { return h.status }
func (h *Hold) PlacedAt() time.Time  { return h.placedAt }
func (h *Hold) ExpiresAt() time.Time { return h.expiresAt }
func (h *Hold) ReadyAt() *time.Time  { return h.readyAt }
