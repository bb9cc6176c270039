package readstore

import (
	"context"
	"errors"

	"library-circulation/internal/infra"
	"library-circulation/internal/infra/db"
	"library-circulation/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LoanReadStore struct {
	db db.DBTX
}

func NewLoanReadStore(dbtx db.DBTX) *LoanReadStore {
	return &LoanReadStore{db: dbtx}
}

func loanViewDataset() *goqu.SelectDataset {
	return builder.From(goqu.T("loans").As("l")).
		Join(goqu.T("books").As("b"), goqu.On(goqu.Ex{"b.id": goqu.I("l.book_id")})).
		Select(
			goqu.I("l.id"), goqu.I("l.book_id"), goqu.I("b.title"),
			goqu.I("l.subject_id"), goqu.I("l.kind"), goqu.I("l.status"),
			goqu.I("l.requested_at"), goqu.I("l.due_at"), goqu.I("l.completed_at"),
			goqu.I("l.approver"), goqu.I("l.rejection_reason"),
		)
}

func (r *LoanReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LoanView, error) {
	sql, args, err := loanViewDataset().
		Where(goqu.I("l.id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build loan view select", err)
	}

	v, err := scanLoanView(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("loan not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find loan view", err)
	}
	return v, nil
}

func (r *LoanReadStore) FindBySubjectID(ctx context.Context, subjectID uuid.UUID, limit int32) ([]*queries.LoanView, error) {
	sql, args, err := loanViewDataset().
		Where(goqu.I("l.subject_id").Eq(subjectID)).
		Order(goqu.I("l.requested_at").Desc()).
		Limit(uint(limit)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build subject loans select", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list subject loans", err)
	}
	defer rows.Close()

	var views []*queries.LoanView
	for rows.Next() {
		v, err := scanLoanView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan loan view", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read subject loans", err)
	}
	return views, nil
}

func scanLoanView(row pgx.Row) (*queries.LoanView, error) {
	var v queries.LoanView
	err := row.Scan(
		&v.ID, &v.BookID, &v.BookTitle,
		&v.SubjectID, &v.Kind, &v.Status,
		&v.RequestedAt, &v.DueAt, &v.CompletedAt,
		&v.Approver, &v.RejectionReason,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
