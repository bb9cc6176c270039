package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookView struct {
	ID              uuid.UUID `json:"id"`
	AccessionNumber string    `json:"accession_number"`
	CallNumber      string    `json:"call_number"`
	Title           string    `json:"title"`
	TotalCopies     int32     `json:"total_copies"`
	AvailableCopies int32     `json:"available_copies"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type LoanView struct {
	ID              uuid.UUID  `json:"id"`
	BookID          uuid.UUID  `json:"book_id"`
	BookTitle       string     `json:"book_title"`
	SubjectID       uuid.UUID  `json:"subject_id"`
	Kind            string     `json:"kind"`
	Status          string     `json:"status"`
	RequestedAt     time.Time  `json:"requested_at"`
	DueAt           *time.Time `json:"due_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	Approver        *uuid.UUID `json:"approver,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
}

type HoldView struct {
	ID        uuid.UUID  `json:"id"`
	BookID    uuid.UUID  `json:"book_id"`
	SubjectID uuid.UUID  `json:"subject_id"`
	Position  int32      `json:"queue_position"`
	Status    string     `json:"status"`
	PlacedAt  time.Time  `json:"placed_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	ReadyAt   *time.Time `json:"ready_at,omitempty"`
}
