//go:build unit || e2e

package builder

import (
	"time"

	domloan "library-circulation/internal/domain/loan"
	reqdto "library-circulation/internal/handler/dto/request"
	"library-circulation/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoanBuilder struct {
	BookID      uuid.UUID
	BookTitle   string
	SubjectID   uuid.UUID
	Kind        domloan.Kind
	RequestedAt time.Time
	LoanPeriod  time.Duration
}

func NewLoanBuilder() *LoanBuilder {
	return &LoanBuilder{
		BookID:      uuid.New(),
		BookTitle:   "The Go Programming Language",
		SubjectID:   uuid.New(),
		Kind:        domloan.KindBorrow,
		RequestedAt: time.Now(),
		LoanPeriod:  336 * time.Hour,
	}
}

func (l *LoanBuilder) With(mutate func(*LoanBuilder)) *LoanBuilder {
	mutate(l)
	return l
}

func (l *LoanBuilder) BuildRequest() (*domloan.Loan, error) {
	return domloan.NewRequest(l.BookID, l.SubjectID, l.Kind, l.RequestedAt)
}

func (l *LoanBuilder) BuildDirectBorrow() *domloan.Loan {
	return domloan.NewDirectBorrow(l.BookID, l.SubjectID, l.RequestedAt, l.LoanPeriod)
}

func (l *LoanBuilder) BuildCreateRequestDTO() reqdto.CreateLoanRequest {
	return reqdto.CreateLoanRequest{BookID: l.BookID}
}

func (l *LoanBuilder) BuildView(status domloan.Status) *queries.LoanView {
	return &queries.LoanView{
		ID:          uuid.New(),
		BookID:      l.BookID,
		BookTitle:   l.BookTitle,
		SubjectID:   l.SubjectID,
		Kind:        l.Kind.String(),
		Status:      status.String(),
		RequestedAt: l.RequestedAt,
	}
}
