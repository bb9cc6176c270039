package repository

import (
	"context"

	"library-circulation/internal/infra"
	"library-circulation/internal/infra/db"

	"github.com/doug-martin/goqu/v9"
)

// SequenceRepository backs the accession number generator. NextValue is a
// single upsert-increment: the counter row lock it takes is held to commit,
// which is exactly what makes year-scoped sequences gapless — a rolled-back
// transaction releases its number before anyone else could observe it.
type SequenceRepository struct {
	db db.DBTX
}

func NewSequenceRepository(dbtx db.DBTX) *SequenceRepository {
	return &SequenceRepository{db: dbtx}
}

// NextValue increments and returns the named counter, creating it at 1 on
// first use. Any failure surfaces as an error; there is deliberately no
// fallback value, because a fabricated id would break uniqueness.
func (r *SequenceRepository) NextValue(ctx context.Context, counterName string) (int64, error) {
	sql, args, err := builder.Insert(tblSequenceCounters).
		Rows(goqu.Record{"name": counterName, "value": 1}).
		OnConflict(goqu.DoUpdate("name", goqu.Record{
			"value": goqu.L("sequence_counters.value + 1"),
		})).
		Returning("value").
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build sequence increment", err)
	}

	var value int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&value); err != nil {
		return 0, infra.WrapRepoErr("failed to increment sequence counter", err)
	}
	return value, nil
}
