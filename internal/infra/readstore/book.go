package readstore

import (
	"context"
	"errors"
	"time"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/infra"
	"library-circulation/internal/infra/db"
	"library-circulation/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var builder = goqu.Dialect("postgres")

type BookReadStore struct {
	db db.DBTX
}

func NewBookReadStore(dbtx db.DBTX) *BookReadStore {
	return &BookReadStore{db: dbtx}
}

func (r *BookReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookView, error) {
	return r.findOne(ctx, goqu.C("id").Eq(id))
}

func (r *BookReadStore) FindByAccession(ctx context.Context, accession string) (*queries.BookView, error) {
	return r.findOne(ctx, goqu.C("accession_number").Eq(accession))
}

func (r *BookReadStore) findOne(ctx context.Context, where exp.Expression) (*queries.BookView, error) {
	sql, args, err := builder.From("books").
		Select("id", "accession_number", "call_number", "title",
			"total_copies", "available_copies", "created_at", "updated_at").
		Where(where).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book view select", err)
	}

	var (
		v                    queries.BookView
		createdAt, updatedAt time.Time
	)
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&v.ID, &v.AccessionNumber, &v.CallNumber, &v.Title,
		&v.TotalCopies, &v.AvailableCopies, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book view", err)
	}

	v.CreatedAt = createdAt
	v.UpdatedAt = updatedAt
	if v.AvailableCopies > 0 {
		v.Status = book.StatusAvailable.String()
	} else {
		v.Status = book.StatusUnavailable.String()
	}
	return &v, nil
}
