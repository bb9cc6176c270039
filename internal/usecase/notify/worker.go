package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"library-circulation/internal/pkg/clock"
	"library-circulation/internal/pkg/config"
	"library-circulation/internal/usecase/commands"
	"library-circulation/internal/usecase/shared"

	"github.com/google/uuid"
)

const failureRetryDelay = time.Minute

// Worker drains the notification outbox and runs the hold expiry sweep.
// Dispatch is best effort: a failed delivery re-queues the job, it never
// touches the circulation state that produced it.
type Worker struct {
	outbox     shared.OutboxRepository
	dispatcher shared.NotificationDispatcher
	identity   shared.IdentityProvider
	holds      commands.HoldCommands
	clock      clock.Clock
	cfg        config.WorkerConfig
}

func NewWorker(
	outbox shared.OutboxRepository,
	dispatcher shared.NotificationDispatcher,
	identity shared.IdentityProvider,
	holds commands.HoldCommands,
	clk clock.Clock,
	cfg config.WorkerConfig,
) *Worker {
	return &Worker{
		outbox:     outbox,
		dispatcher: dispatcher,
		identity:   identity,
		holds:      holds,
		clock:      clk,
		cfg:        cfg,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	pollTicker := time.NewTicker(w.cfg.PollInterval)
	defer pollTicker.Stop()
	sweepTicker := time.NewTicker(w.cfg.SweepInterval)
	defer sweepTicker.Stop()

	slog.Info("notification worker started",
		"poll_interval", w.cfg.PollInterval.String(),
		"sweep_interval", w.cfg.SweepInterval.String())

	for {
		select {
		case <-ctx.Done():
			slog.Info("notification worker stopped")
			return
		case <-pollTicker.C:
			w.DrainOutbox(ctx)
		case <-sweepTicker.C:
			w.SweepExpired(ctx)
		}
	}
}

// DrainOutbox claims and dispatches one batch of due jobs.
func (w *Worker) DrainOutbox(ctx context.Context) {
	now := w.clock.Now()

	jobs, err := w.outbox.ClaimDue(ctx, now, int32(w.cfg.BatchSize))
	if err != nil {
		slog.Error("failed to claim notification jobs", "error", err.Error())
		return
	}

	for _, job := range jobs {
		if err := w.dispatch(ctx, job); err != nil {
			slog.Warn("notification dispatch failed",
				"job_id", job.ID, "topic", job.Topic, "error", err.Error())
			if err := w.outbox.MarkFailed(ctx, job.ID, err.Error(), now.Add(failureRetryDelay)); err != nil {
				slog.Error("failed to re-queue notification job", "job_id", job.ID, "error", err.Error())
			}
			continue
		}
		if err := w.outbox.MarkDone(ctx, job.ID); err != nil {
			slog.Error("failed to mark notification job done", "job_id", job.ID, "error", err.Error())
		}
	}
}

func (w *Worker) dispatch(ctx context.Context, job shared.NotificationJob) error {
	var payload map[string]any
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return err
	}

	subjectID, err := subjectFromPayload(payload)
	if err != nil {
		return err
	}

	// Display data is decoration; an identity outage must not block the
	// notification itself.
	if info, err := w.identity.ResolveSubject(ctx, subjectID); err == nil {
		payload["display_name"] = info.DisplayName
	}

	return w.dispatcher.Notify(ctx, subjectID, job.Topic, payload)
}

// SweepExpired runs the stale-hold expiry pass.
func (w *Worker) SweepExpired(ctx context.Context) {
	expired, err := w.holds.ExpireStale(ctx)
	if err != nil {
		slog.Error("hold expiry sweep failed", "error", err.Error())
		return
	}
	if expired > 0 {
		slog.Info("hold expiry sweep finished", "expired", expired)
	}
}

func subjectFromPayload(payload map[string]any) (uuid.UUID, error) {
	raw, _ := payload["subject_id"].(string)
	return uuid.Parse(raw)
}
