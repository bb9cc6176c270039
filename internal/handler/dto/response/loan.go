package response

import (
	"time"

	"library-circulation/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoanResponse struct {
	ID              uuid.UUID  `json:"id"`
	BookID          uuid.UUID  `json:"bookId"`
	BookTitle       string     `json:"bookTitle"`
	SubjectID       uuid.UUID  `json:"subjectId"`
	Kind            string     `json:"kind"`
	Status          string     `json:"status"`
	RequestedAt     time.Time  `json:"requestedAt"`
	DueAt           *time.Time `json:"dueAt,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	Approver        *uuid.UUID `json:"approver,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
}

func FromLoanView(v *queries.LoanView) *LoanResponse {
	return &LoanResponse{
		ID:              v.ID,
		BookID:          v.BookID,
		BookTitle:       v.BookTitle,
		SubjectID:       v.SubjectID,
		Kind:            v.Kind,
		Status:          v.Status,
		RequestedAt:     v.RequestedAt,
		DueAt:           v.DueAt,
		CompletedAt:     v.CompletedAt,
		Approver:        v.Approver,
		RejectionReason: v.RejectionReason,
	}
}
