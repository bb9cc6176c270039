package request

import "github.com/google/uuid"

type CreateLoanRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
}

type RejectLoanRequest struct {
	Reason string `json:"reason" binding:"required"`
}
