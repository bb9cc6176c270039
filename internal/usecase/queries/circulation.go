package queries

import (
	"context"

	"github.com/google/uuid"
)

type BookQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	GetByAccession(ctx context.Context, accession string) (*BookView, error)
}

type LoanQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*LoanView, error)
	ListBySubject(ctx context.Context, subjectID uuid.UUID, limit int) ([]*LoanView, error)
}

type HoldQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*HoldView, error)
	ListActiveByBook(ctx context.Context, bookID uuid.UUID) ([]*HoldView, error)
}

type BookViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	FindByAccession(ctx context.Context, accession string) (*BookView, error)
}

type LoanViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LoanView, error)
	FindBySubjectID(ctx context.Context, subjectID uuid.UUID, limit int32) ([]*LoanView, error)
}

type HoldViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*HoldView, error)
	FindActiveByBookID(ctx context.Context, bookID uuid.UUID) ([]*HoldView, error)
}

type bookQueriesImpl struct {
	repo BookViewRepo
}

func NewBookQueries(repo BookViewRepo) BookQueries {
	return &bookQueriesImpl{repo: repo}
}

func (q *bookQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *bookQueriesImpl) GetByAccession(ctx context.Context, accession string) (*BookView, error) {
	return q.repo.FindByAccession(ctx, accession)
}

type loanQueriesImpl struct {
	repo LoanViewRepo
}

func NewLoanQueries(repo LoanViewRepo) LoanQueries {
	return &loanQueriesImpl{repo: repo}
}

func (q *loanQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*LoanView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *loanQueriesImpl) ListBySubject(ctx context.Context, subjectID uuid.UUID, limit int) ([]*LoanView, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return q.repo.FindBySubjectID(ctx, subjectID, int32(limit))
}

type holdQueriesImpl struct {
	repo HoldViewRepo
}

func NewHoldQueries(repo HoldViewRepo) HoldQueries {
	return &holdQueriesImpl{repo: repo}
}

func (q *holdQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*HoldView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *holdQueriesImpl) ListActiveByBook(ctx context.Context, bookID uuid.UUID) ([]*HoldView, error) {
	return q.repo.FindActiveByBookID(ctx, bookID)
}
