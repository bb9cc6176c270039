package repository

import (
	"context"
	"time"

	"library-circulation/internal/infra"
	"library-circulation/internal/infra/db"
	"library-circulation/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// NotificationRepository is the write side of the notification outbox.
// Jobs are enqueued in the same transaction as the state transition that
// caused them; dispatch happens later, in the worker.
type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	sql, args, err := builder.Insert(tblNotificationJobs).Rows(goqu.Record{
		"id":      uuid.New(),
		"kind":    kind,
		"topic":   topic,
		"payload": payload,
		"run_at":  runAt,
		"status":  "pending",
	}).Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build notification job insert", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// OutboxRepository is the worker-side reader of the same table.
type OutboxRepository struct {
	db db.DBTX
}

func NewOutboxRepository(dbtx db.DBTX) *OutboxRepository {
	return &OutboxRepository{db: dbtx}
}

// ClaimDue picks up due pending jobs. SKIP LOCKED lets concurrent workers
// partition the backlog instead of blocking or double-sending.
func (r *OutboxRepository) ClaimDue(ctx context.Context, now time.Time, limit int32) ([]shared.NotificationJob, error) {
	const claimSQL = `
		UPDATE notification_jobs
		SET status = 'processing', attempts = attempts + 1, updated_at = now()
		WHERE id IN (
			SELECT id FROM notification_jobs
			WHERE status = 'pending' AND run_at <= $1
			ORDER BY run_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, kind, topic, payload, run_at`

	rows, err := r.db.Query(ctx, claimSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []shared.NotificationJob
	for rows.Next() {
		var j shared.NotificationJob
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.RunAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification jobs", err)
	}
	return jobs, nil
}

func (r *OutboxRepository) MarkDone(ctx context.Context, id uuid.UUID) error {
	sql, args, err := builder.Update(tblNotificationJobs).
		Set(goqu.Record{"status": "done", "updated_at": goqu.L("now()")}).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build job done update", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return infra.WrapRepoErr("failed to mark notification job done", err)
	}
	return nil
}

// MarkFailed re-queues the job for a later attempt; delivery is best
// effort and never blocks or rolls back the transition that enqueued it.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, cause string, retryAt time.Time) error {
	sql, args, err := builder.Update(tblNotificationJobs).
		Set(goqu.Record{
			"status":     "pending",
			"last_error": cause,
			"run_at":     retryAt,
			"updated_at": goqu.L("now()"),
		}).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build job failed update", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
