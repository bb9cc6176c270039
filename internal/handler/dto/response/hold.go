package response

import (
	"time"

	"library-circulation/internal/usecase/queries"

	"github.com/google/uuid"
)

type HoldResponse struct {
	ID        uuid.UUID  `json:"id"`
	BookID    uuid.UUID  `json:"bookId"`
	SubjectID uuid.UUID  `json:"subjectId"`
	Position  int32      `json:"queuePosition"`
	Status    string     `json:"status"`
	PlacedAt  time.Time  `json:"placedAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
	ReadyAt   *time.Time `json:"readyAt,omitempty"`
}

func FromHoldView(v *queries.HoldView) *HoldResponse {
	return &HoldResponse{
		ID:        v.ID,
		BookID:    v.BookID,
		SubjectID: v.SubjectID,
		Position:  v.Position,
		Status:    v.Status,
		PlacedAt:  v.PlacedAt,
		ExpiresAt: v.ExpiresAt,
		ReadyAt:   v.ReadyAt,
	}
}
