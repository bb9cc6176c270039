package request

import "github.com/google/uuid"

type PlaceHoldRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
}

type CancelHoldRequest struct {
	Reason string `json:"reason"`
}
