//go:build unit || e2e

package builder

import (
	"time"

	domhold "library-circulation/internal/domain/hold"
	reqdto "library-circulation/internal/handler/dto/request"
	"library-circulation/internal/usecase/queries"

	"github.com/google/uuid"
)

type HoldBuilder struct {
	BookID    uuid.UUID
	SubjectID uuid.UUID
	Position  int32
	PlacedAt  time.Time
	Lifetime  time.Duration
}

func NewHoldBuilder() *HoldBuilder {
	return &HoldBuilder{
		BookID:    uuid.New(),
		SubjectID: uuid.New(),
		Position:  1,
		PlacedAt:  time.Now(),
		Lifetime:  720 * time.Hour,
	}
}

func (h *HoldBuilder) With(mutate func(*HoldBuilder)) *HoldBuilder {
	mutate(h)
	return h
}

func (h *HoldBuilder) BuildDomain() (*domhold.Hold, error) {
	return domhold.NewHold(h.BookID, h.SubjectID, h.Position, h.PlacedAt, h.Lifetime)
}

func (h *HoldBuilder) BuildPlaceRequestDTO() reqdto.PlaceHoldRequest {
	return reqdto.PlaceHoldRequest{BookID: h.BookID}
}

func (h *HoldBuilder) BuildView(status domhold.Status) *queries.HoldView {
	return &queries.HoldView{
		ID:        uuid.New(),
		BookID:    h.BookID,
		SubjectID: h.SubjectID,
		Position:  h.Position,
		Status:    status.String(),
		PlacedAt:  h.PlacedAt,
		ExpiresAt: h.PlacedAt.Add(h.Lifetime),
	}
}
