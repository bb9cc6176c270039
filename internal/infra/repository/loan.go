package repository

import (
	"context"
	"errors"
	"time"

	"library-circulation/internal/domain/loan"
	"library-circulation/internal/infra"
	"library-circulation/internal/infra/db"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var openLoanStatuses = []string{
	loan.StatusPending.String(),
	loan.StatusActive.String(),
	loan.StatusApproved.String(),
}

type LoanRepository struct {
	db db.DBTX
}

func NewLoanRepository(dbtx db.DBTX) *LoanRepository {
	return &LoanRepository{db: dbtx}
}

func (r *LoanRepository) Create(ctx context.Context, l *loan.Loan) error {
	sql, args, err := builder.Insert(tblLoans).Rows(goqu.Record{
		"id":               l.ID(),
		"book_id":          l.BookID(),
		"subject_id":       l.SubjectID(),
		"kind":             l.Kind().String(),
		"status":           l.Status().String(),
		"holding_copy":     l.HoldingCopy(),
		"requested_at":     l.RequestedAt(),
		"due_at":           l.DueAt(),
		"completed_at":     l.CompletedAt(),
		"approver":         l.Approver(),
		"rejection_reason": l.RejectionReason(),
	}).Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build loan insert", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return infra.WrapRepoErr("failed to create loan", err)
	}
	return nil
}

func (r *LoanRepository) FindByID(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	return r.findOne(ctx, id, false)
}

func (r *LoanRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	return r.findOne(ctx, id, true)
}

func (r *LoanRepository) Update(ctx context.Context, l *loan.Loan) error {
	sql, args, err := builder.Update(tblLoans).
		Set(goqu.Record{
			"status":           l.Status().String(),
			"holding_copy":     l.HoldingCopy(),
			"due_at":           l.DueAt(),
			"completed_at":     l.CompletedAt(),
			"approver":         l.Approver(),
			"rejection_reason": l.RejectionReason(),
			"updated_at":       goqu.L("now()"),
		}).
		Where(goqu.C("id").Eq(l.ID())).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build loan update", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update loan", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("loan not found", nil, infra.KindNotFound)
	}
	return nil
}

// LockSubject takes a transaction-scoped advisory lock keyed on the
// subject. Loan creation paths take it before counting open loans, so the
// borrow cap check cannot be raced by the same subject on another
// connection.
func (r *LoanRepository) LockSubject(ctx context.Context, subjectID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		"SELECT pg_advisory_xact_lock(hashtextextended($1, 0))",
		subjectID.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to lock subject", err)
	}
	return nil
}

func (r *LoanRepository) CountOpenBorrowsBySubject(ctx context.Context, subjectID uuid.UUID) (int64, error) {
	sql, args, err := builder.From(tblLoans).
		Select(goqu.COUNT("*")).
		Where(
			goqu.C("subject_id").Eq(subjectID),
			goqu.C("kind").Eq(loan.KindBorrow.String()),
			goqu.C("status").In(openLoanStatuses),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build open borrow count", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count open borrows", err)
	}
	return count, nil
}

func (r *LoanRepository) CountActiveBorrowsByBook(ctx context.Context, bookID uuid.UUID) (int64, error) {
	sql, args, err := builder.From(tblLoans).
		Select(goqu.COUNT("*")).
		Where(
			goqu.C("book_id").Eq(bookID),
			goqu.C("kind").Eq(loan.KindBorrow.String()),
			goqu.C("status").Eq(loan.StatusActive.String()),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build active borrow count", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count active borrows", err)
	}
	return count, nil
}

func (r *LoanRepository) ExistsOpenBySubjectAndBook(ctx context.Context, subjectID, bookID uuid.UUID) (bool, error) {
	sql, args, err := builder.From(tblLoans).
		Select(goqu.COUNT("*")).
		Where(
			goqu.C("subject_id").Eq(subjectID),
			goqu.C("book_id").Eq(bookID),
			goqu.C("status").In(openLoanStatuses),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build open loan existence query", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, infra.WrapRepoErr("failed to check open loan existence", err)
	}
	return count > 0, nil
}

func (r *LoanRepository) findOne(ctx context.Context, id uuid.UUID, forUpdate bool) (*loan.Loan, error) {
	ds := builder.From(tblLoans).
		Select("id", "book_id", "subject_id", "kind", "status", "holding_copy",
			"requested_at", "due_at", "completed_at", "approver", "rejection_reason").
		Where(goqu.C("id").Eq(id))
	if forUpdate {
		ds = ds.ForUpdate(exp.Wait)
	}

	sql, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build loan select", err)
	}

	var (
		loanID, bookID, subjectID uuid.UUID
		kind, status              string
		holdingCopy               bool
		requestedAt               time.Time
		dueAt, completedAt        *time.Time
		approver                  *uuid.UUID
		rejectionReason           *string
	)
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&loanID, &bookID, &subjectID, &kind, &status, &holdingCopy,
		&requestedAt, &dueAt, &completedAt, &approver, &rejectionReason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("loan not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find loan", err)
	}

	return loan.Reconstruct(
		loanID, bookID, subjectID,
		loan.Kind(kind), loan.Status(status), holdingCopy,
		requestedAt, dueAt, completedAt, approver, rejectionReason,
	), nil
}
