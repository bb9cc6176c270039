package readstore

import (
	"context"
	"errors"

	"library-circulation/internal/domain/hold"
	"library-circulation/internal/infra"
	"library-circulation/internal/infra/db"
	"library-circulation/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type HoldReadStore struct {
	db db.DBTX
}

func NewHoldReadStore(dbtx db.DBTX) *HoldReadStore {
	return &HoldReadStore{db: dbtx}
}

var holdViewColumns = []any{
	"id", "book_id", "subject_id", "queue_position", "status",
	"placed_at", "expires_at", "ready_at",
}

func (r *HoldReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.HoldView, error) {
	sql, args, err := builder.From("holds").
		Select(holdViewColumns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build hold view select", err)
	}

	v, err := scanHoldView(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("hold not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find hold view", err)
	}
	return v, nil
}

func (r *HoldReadStore) FindActiveByBookID(ctx context.Context, bookID uuid.UUID) ([]*queries.HoldView, error) {
	sql, args, err := builder.From("holds").
		Select(holdViewColumns...).
		Where(
			goqu.C("book_id").Eq(bookID),
			goqu.C("status").Eq(hold.StatusActive.String()),
		).
		Order(goqu.I("queue_position").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build active hold views select", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active hold views", err)
	}
	defer rows.Close()

	var views []*queries.HoldView
	for rows.Next() {
		v, err := scanHoldView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan hold view", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read active hold views", err)
	}
	return views, nil
}

func scanHoldView(row pgx.Row) (*queries.HoldView, error) {
	var v queries.HoldView
	err := row.Scan(
		&v.ID, &v.BookID, &v.SubjectID, &v.Position, &v.Status,
		&v.PlacedAt, &v.ExpiresAt, &v.ReadyAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
