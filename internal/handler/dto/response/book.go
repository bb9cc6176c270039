package response

import (
	"time"

	"library-circulation/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	AccessionNumber string    `json:"accessionNumber"`
	CallNumber      string    `json:"callNumber"`
	Title           string    `json:"title"`
	TotalCopies     int32     `json:"totalCopies"`
	AvailableCopies int32     `json:"availableCopies"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromBookView(v *queries.BookView) *BookResponse {
	return &BookResponse{
		ID:              v.ID,
		AccessionNumber: v.AccessionNumber,
		CallNumber:      v.CallNumber,
		Title:           v.Title,
		TotalCopies:     v.TotalCopies,
		AvailableCopies: v.AvailableCopies,
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}
