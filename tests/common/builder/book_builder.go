//go:build unit || e2e

package builder

import (
	"time"

	dombook "library-circulation/internal/domain/book"
	reqdto "library-circulation/internal/handler/dto/request"
	"library-circulation/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookBuilder struct {
	Year            int
	Seq             int64
	Title           string
	CallNumber      string
	TotalCopies     int32
	AvailableCopies int32
	CreatedAt       time.Time
}

func NewBookBuilder() *BookBuilder {
	return &BookBuilder{
		Year:            2026,
		Seq:             1,
		Title:           "The Go Programming Language",
		CallNumber:      "005.133 DON",
		TotalCopies:     3,
		AvailableCopies: 3,
		CreatedAt:       time.Now(),
	}
}

func (b *BookBuilder) With(mutate func(*BookBuilder)) *BookBuilder {
	mutate(b)
	return b
}

func (b *BookBuilder) BuildDomain() (*dombook.Book, error) {
	accession, err := dombook.NewAccessionNumber(b.Year, b.Seq)
	if err != nil {
		return nil, err
	}
	return dombook.NewBook(accession, b.Title, b.CallNumber, b.TotalCopies, b.CreatedAt)
}

func (b *BookBuilder) BuildReconstructed() *dombook.Book {
	accession, _ := dombook.NewAccessionNumber(b.Year, b.Seq)
	return dombook.ReconstructBook(
		uuid.New(), accession, b.Title, b.CallNumber,
		b.TotalCopies, b.AvailableCopies, b.CreatedAt, b.CreatedAt,
	)
}

func (b *BookBuilder) BuildRegisterRequestDTO() reqdto.RegisterBookRequest {
	return reqdto.RegisterBookRequest{
		Title:       b.Title,
		CallNumber:  b.CallNumber,
		TotalCopies: b.TotalCopies,
	}
}

func (b *BookBuilder) BuildView() *queries.BookView {
	accession, _ := dombook.NewAccessionNumber(b.Year, b.Seq)
	status := dombook.StatusAvailable
	if b.AvailableCopies == 0 {
		status = dombook.StatusUnavailable
	}
	return &queries.BookView{
		ID:              uuid.New(),
		AccessionNumber: accession.String(),
		CallNumber:      b.CallNumber,
		Title:           b.Title,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		Status:          status.String(),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}
