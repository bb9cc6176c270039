package repository

import (
	"context"
	"errors"
	"time"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/infra"
	"library-circulation/internal/infra/db"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BookRepository is the inventory ledger. Copy counts are only ever moved
// by the two conditional UPDATEs below; everything else reads.
type BookRepository struct {
	db db.DBTX
}

func NewBookRepository(dbtx db.DBTX) *BookRepository {
	return &BookRepository{db: dbtx}
}

func (r *BookRepository) Create(ctx context.Context, b *book.Book) error {
	sql, args, err := builder.Insert(tblBooks).Rows(goqu.Record{
		"id":               b.ID(),
		"accession_number": b.AccessionNumber().String(),
		"call_number":      b.CallNumber(),
		"title":            b.Title(),
		"total_copies":     b.TotalCopies(),
		"available_copies": b.AvailableCopies(),
		"created_at":       b.CreatedAt(),
		"updated_at":       b.UpdatedAt(),
	}).Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build book insert", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return infra.WrapRepoErr("failed to create book", err)
	}
	return nil
}

func (r *BookRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	return r.findOne(ctx, goqu.C("id").Eq(id), false)
}

// LockByID takes the book row lock. Every transaction that mutates the
// book's hold queue must call this first; it is what serializes reindexing
// per book.
func (r *BookRepository) LockByID(ctx context.Context, id uuid.UUID) error {
	sql, args, err := builder.From(tblBooks).
		Select("id").
		Where(goqu.C("id").Eq(id)).
		ForUpdate(exp.Wait).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build book lock query", err)
	}

	var locked uuid.UUID
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock book", err)
	}
	return nil
}

// ReserveCopy atomically takes one available copy. The availability guard
// lives in the statement itself, never in a prior read.
func (r *BookRepository) ReserveCopy(ctx context.Context, id uuid.UUID) error {
	sql, args, err := builder.Update(tblBooks).
		Set(goqu.Record{
			"available_copies": goqu.L("available_copies - 1"),
			"updated_at":       goqu.L("now()"),
		}).
		Where(
			goqu.C("id").Eq(id),
			goqu.C("available_copies").Gt(0),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build reserve copy update", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve copy", err)
	}
	if tag.RowsAffected() == 0 {
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
		return infra.WrapRepoErr("no copies available", nil, infra.KindOutOfStock)
	}
	return nil
}

// ReleaseCopy atomically returns one copy, capped at total_copies. Hitting
// the cap means a release without a matching reserve, which is a bug, not
// a condition to absorb.
func (r *BookRepository) ReleaseCopy(ctx context.Context, id uuid.UUID) error {
	sql, args, err := builder.Update(tblBooks).
		Set(goqu.Record{
			"available_copies": goqu.L("available_copies + 1"),
			"updated_at":       goqu.L("now()"),
		}).
		Where(
			goqu.C("id").Eq(id),
			goqu.L("available_copies < total_copies"),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build release copy update", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to release copy", err)
	}
	if tag.RowsAffected() == 0 {
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
		return infra.WrapRepoErr("release would exceed total copies", nil, infra.KindInvariantViolated)
	}
	return nil
}

func (r *BookRepository) findOne(ctx context.Context, where exp.Expression, forUpdate bool) (*book.Book, error) {
	ds := builder.From(tblBooks).
		Select("id", "accession_number", "call_number", "title",
			"total_copies", "available_copies", "created_at", "updated_at").
		Where(where)
	if forUpdate {
		ds = ds.ForUpdate(exp.Wait)
	}

	sql, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book select", err)
	}

	var (
		id                     uuid.UUID
		accession, call, title string
		total, available       int32
		createdAt, updatedAt   time.Time
	)
	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&id, &accession, &call, &title, &total, &available, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book", err)
	}

	acc, err := book.ParseAccessionNumber(accession)
	if err != nil {
		return nil, infra.WrapRepoErr("stored accession number is malformed", err, infra.KindInvariantViolated)
	}

	return book.ReconstructBook(id, acc, title, call, total, available, createdAt, updatedAt), nil
}
