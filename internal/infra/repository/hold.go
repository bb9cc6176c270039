package repository

import (
	"context"
	"errors"
	"time"

	"library-circulation/internal/domain/hold"
	"library-circulation/internal/infra"
	"library-circulation/internal/infra/db"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var openHoldStatuses = []string{
	hold.StatusActive.String(),
	hold.StatusReady.String(),
}

type HoldRepository struct {
	db db.DBTX
}

func NewHoldRepository(dbtx db.DBTX) *HoldRepository {
	return &HoldRepository{db: dbtx}
}

func (r *HoldRepository) Create(ctx context.Context, h *hold.Hold) error {
	sql, args, err := builder.Insert(tblHolds).Rows(goqu.Record{
		"id":             h.ID(),
		"book_id":        h.BookID(),
		"subject_id":     h.SubjectID(),
		"queue_position": h.Position(),
		"status":         h.Status().String(),
		"placed_at":      h.PlacedAt(),
		"expires_at":     h.ExpiresAt(),
		"ready_at":       h.ReadyAt(),
	}).Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build hold insert", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return infra.WrapRepoErr("failed to create hold", err)
	}
	return nil
}

func (r *HoldRepository) FindByID(ctx context.Context, id uuid.UUID) (*hold.Hold, error) {
	return r.findOne(ctx, id, false)
}

func (r *HoldRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*hold.Hold, error) {
	return r.findOne(ctx, id, true)
}

func (r *HoldRepository) FindActiveByBook(ctx context.Context, bookID uuid.UUID) ([]*hold.Hold, error) {
	sql, args, err := builder.From(tblHolds).
		Select(holdColumns...).
		Where(
			goqu.C("book_id").Eq(bookID),
			goqu.C("status").Eq(hold.StatusActive.String()),
		).
		Order(goqu.I("placed_at").Asc(), goqu.I("id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build active holds select", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active holds", err)
	}
	defer rows.Close()

	var holds []*hold.Hold
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan hold", err)
		}
		holds = append(holds, h)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read active holds", err)
	}
	return holds, nil
}

func (r *HoldRepository) FindOpenByBook(ctx context.Context, bookID uuid.UUID) ([]*hold.Hold, error) {
	sql, args, err := builder.From(tblHolds).
		Select(holdColumns...).
		Where(
			goqu.C("book_id").Eq(bookID),
			goqu.C("status").In(openHoldStatuses),
		).
		Order(goqu.I("placed_at").Asc(), goqu.I("id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build open holds select", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list open holds", err)
	}
	defer rows.Close()

	var holds []*hold.Hold
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan hold", err)
		}
		holds = append(holds, h)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read open holds", err)
	}
	return holds, nil
}

func (r *HoldRepository) CountActiveByBook(ctx context.Context, bookID uuid.UUID) (int64, error) {
	sql, args, err := builder.From(tblHolds).
		Select(goqu.COUNT("*")).
		Where(
			goqu.C("book_id").Eq(bookID),
			goqu.C("status").Eq(hold.StatusActive.String()),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build active hold count", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count active holds", err)
	}
	return count, nil
}

func (r *HoldRepository) ExistsOpenBySubjectAndBook(ctx context.Context, subjectID, bookID uuid.UUID) (bool, error) {
	sql, args, err := builder.From(tblHolds).
		Select(goqu.COUNT("*")).
		Where(
			goqu.C("subject_id").Eq(subjectID),
			goqu.C("book_id").Eq(bookID),
			goqu.C("status").In(openHoldStatuses),
		).
		Prepared(true).ToSQL()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build open hold existence query", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, infra.WrapRepoErr("failed to check open hold existence", err)
	}
	return count > 0, nil
}

func (r *HoldRepository) UpdateState(ctx context.Context, h *hold.Hold) error {
	sql, args, err := builder.Update(tblHolds).
		Set(goqu.Record{
			"status":         h.Status().String(),
			"queue_position": h.Position(),
			"expires_at":     h.ExpiresAt(),
			"ready_at":       h.ReadyAt(),
			"updated_at":     goqu.L("now()"),
		}).
		Where(goqu.C("id").Eq(h.ID())).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build hold update", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update hold", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("hold not found", nil, infra.KindNotFound)
	}
	return nil
}

// UpdatePositions applies a reindex result. Reindexing only ever moves
// holds toward the front, so writing in ascending target order keeps the
// partial unique index on (book_id, position) satisfied at every step.
// The caller owns the transaction and the book row lock.
func (r *HoldRepository) UpdatePositions(ctx context.Context, holds []*hold.Hold) error {
	for _, h := range holds {
		sql, args, err := builder.Update(tblHolds).
			Set(goqu.Record{
				"queue_position": h.Position(),
				"updated_at":     goqu.L("now()"),
			}).
			Where(goqu.C("id").Eq(h.ID())).
			Prepared(true).ToSQL()
		if err != nil {
			return infra.WrapRepoErr("failed to build position update", err)
		}

		tag, err := r.db.Exec(ctx, sql, args...)
		if err != nil {
			return infra.WrapRepoErr("failed to update hold position", err)
		}
		if tag.RowsAffected() == 0 {
			return infra.WrapRepoErr("hold disappeared during reindex", nil, infra.KindInvariantViolated)
		}
	}
	return nil
}

func (r *HoldRepository) FindStaleBookIDs(ctx context.Context, now time.Time, limit int32) ([]uuid.UUID, error) {
	sql, args, err := builder.From(tblHolds).
		Select(goqu.DISTINCT("book_id")).
		Where(
			goqu.C("status").In(openHoldStatuses),
			goqu.C("expires_at").Lte(now),
		).
		Limit(uint(limit)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build stale hold query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stale hold books", err)
	}
	defer rows.Close()

	var bookIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan stale hold book", err)
		}
		bookIDs = append(bookIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read stale hold books", err)
	}
	return bookIDs, nil
}

var holdColumns = []any{
	"id", "book_id", "subject_id", "queue_position", "status",
	"placed_at", "expires_at", "ready_at",
}

func (r *HoldRepository) findOne(ctx context.Context, id uuid.UUID, forUpdate bool) (*hold.Hold, error) {
	ds := builder.From(tblHolds).
		Select(holdColumns...).
		Where(goqu.C("id").Eq(id))
	if forUpdate {
		ds = ds.ForUpdate(exp.Wait)
	}

	sql, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build hold select", err)
	}

	h, err := scanHold(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("hold not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find hold", err)
	}
	return h, nil
}

func scanHold(row pgx.Row) (*hold.Hold, error) {
	var (
		id, bookID, subjectID uuid.UUID
		position              int32
		status                string
		placedAt, expiresAt   time.Time
		readyAt               *time.Time
	)
	if err := row.Scan(&id, &bookID, &subjectID, &position, &status, &placedAt, &expiresAt, &readyAt); err != nil {
		return nil, err
	}
	return hold.Reconstruct(id, bookID, subjectID, position, hold.Status(status), placedAt, expiresAt, readyAt), nil
}
