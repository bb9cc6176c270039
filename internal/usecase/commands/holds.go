package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"library-circulation/internal/domain/hold"
	"library-circulation/internal/pkg/clock"
	"library-circulation/internal/pkg/config"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/queries"
	"library-circulation/internal/usecase/shared"

	"github.com/google/uuid"
)

type HoldCommands interface {
	PlaceHold(ctx context.Context, bookID, subjectID uuid.UUID) (*queries.HoldView, error)
	CancelHold(ctx context.Context, holdID uuid.UUID, reason string) error
	MarkPickedUp(ctx context.Context, holdID uuid.UUID) error
	FulfillNext(ctx context.Context, bookID uuid.UUID) error
	ExpireStale(ctx context.Context) (int, error)
}

type holdCommandsImpl struct {
	uow         shared.UnitOfWork
	holdQueries queries.HoldQueries
	clock       clock.Clock
	cfg         config.CirculationConfig
}

func NewHoldCommands(
	uow shared.UnitOfWork,
	holdQueries queries.HoldQueries,
	clk clock.Clock,
	cfg config.CirculationConfig,
) HoldCommands {
	return &holdCommandsImpl{
		uow:         uow,
		holdQueries: holdQueries,
		clock:       clk,
		cfg:         cfg,
	}
}

// PlaceHold appends the subject to the book's waitlist. Holds and borrows
// are mutually exclusive per subject and book, and one open hold each.
func (c *holdCommandsImpl) PlaceHold(ctx context.Context, bookID, subjectID uuid.UUID) (*queries.HoldView, error) {
	now := c.clock.Now()

	var created *hold.Hold
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Books().LockByID(ctx, bookID); err != nil {
			return translateRepoErr(err, errs.ErrBookNotFound)
		}

		hasLoan, err := tx.Loans().ExistsOpenBySubjectAndBook(ctx, subjectID, bookID)
		if err != nil {
			return translateRepoErr(err, errs.ErrBookNotFound)
		}
		if hasLoan {
			return errs.ErrHoldBorrowExclusion
		}

		hasHold, err := tx.Holds().ExistsOpenBySubjectAndBook(ctx, subjectID, bookID)
		if err != nil {
			return translateRepoErr(err, errs.ErrBookNotFound)
		}
		if hasHold {
			return errs.ErrDuplicateHold
		}

		count, err := tx.Holds().CountActiveByBook(ctx, bookID)
		if err != nil {
			return translateRepoErr(err, errs.ErrBookNotFound)
		}

		h, err := hold.NewHold(bookID, subjectID, hold.NextPosition(int32(count)), now, c.cfg.HoldLifetime)
		if err != nil {
			return err
		}

		if err := tx.Holds().Create(ctx, h); err != nil {
			return translateRepoErr(err, errs.ErrBookNotFound)
		}

		created = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.holdQueries.GetByID(ctx, created.ID())
}

func (c *holdCommandsImpl) CancelHold(ctx context.Context, holdID uuid.UUID, reason string) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		h, err := tx.Holds().FindByIDForUpdate(ctx, holdID)
		if err != nil {
			return translateRepoErr(err, errs.ErrHoldNotFound)
		}

		if err := tx.Books().LockByID(ctx, h.BookID()); err != nil {
			return translateRepoErr(err, errs.ErrBookNotFound)
		}

		if err := h.Cancel(); err != nil {
			return err
		}
		if err := tx.Holds().UpdateState(ctx, h); err != nil {
			return translateRepoErr(err, errs.ErrHoldNotFound)
		}

		return reindexBook(ctx, tx, h.BookID())
	})
	if err != nil {
		return err
	}

	slog.Info("hold cancelled", "hold_id", holdID, "reason", reason)
	return nil
}

func (c *holdCommandsImpl) MarkPickedUp(ctx context.Context, holdID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		h, err := tx.Holds().FindByIDForUpdate(ctx, holdID)
		if err != nil {
			return translateRepoErr(err, errs.ErrHoldNotFound)
		}

		if err := tx.Books().LockByID(ctx, h.BookID()); err != nil {
			return translateRepoErr(err, errs.ErrBookNotFound)
		}

		if err := h.MarkFulfilled(); err != nil {
			return err
		}
		if err := tx.Holds().UpdateState(ctx, h); err != nil {
			return translateRepoErr(err, errs.ErrHoldNotFound)
		}

		return reindexBook(ctx, tx, h.BookID())
	})
}

// FulfillNext promotes the front of the queue after availability increased.
// Idempotent: with no active hold it is a no-op.
func (c *holdCommandsImpl) FulfillNext(ctx context.Context, bookID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Books().LockByID(ctx, bookID); err != nil {
			return translateRepoErr(err, errs.ErrBookNotFound)
		}
		_, err := fulfillNextInTx(ctx, tx, bookID, c.clock.Now(), c.cfg.HoldPickupWindow)
		return err
	})
}

// ExpireStale sweeps open holds past their expiry, one transaction per
// book so a failure on one book cannot leave another half-reindexed.
func (c *holdCommandsImpl) ExpireStale(ctx context.Context) (int, error) {
	now := c.clock.Now()

	var bookIDs []uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		bookIDs, err = tx.Holds().FindStaleBookIDs(ctx, now, 100)
		return translateRepoErr(err, errs.ErrBookNotFound)
	})
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, bookID := range bookIDs {
		n, err := c.expireBook(ctx, bookID, now)
		if err != nil {
			return expired, err
		}
		expired += n
	}
	return expired, nil
}

func (c *holdCommandsImpl) expireBook(ctx context.Context, bookID uuid.UUID, now time.Time) (int, error) {
	expired := 0
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired = 0

		if err := tx.Books().LockByID(ctx, bookID); err != nil {
			return translateRepoErr(err, errs.ErrBookNotFound)
		}

		open, err := tx.Holds().FindOpenByBook(ctx, bookID)
		if err != nil {
			return translateRepoErr(err, errs.ErrBookNotFound)
		}

		readyExpired := false
		for _, h := range open {
			if !h.IsStale(now) {
				continue
			}
			if h.Status() == hold.StatusReady {
				readyExpired = true
			}
			if err := h.Expire(now); err != nil {
				return err
			}
			if err := tx.Holds().UpdateState(ctx, h); err != nil {
				return translateRepoErr(err, errs.ErrHoldNotFound)
			}
			expired++
		}

		if expired == 0 {
			return nil
		}

		if err := reindexBook(ctx, tx, bookID); err != nil {
			return err
		}

		// An expired ready hold was sitting on a free copy; pass the
		// claim to the next subject in line.
		if readyExpired {
			if _, err := fulfillNextInTx(ctx, tx, bookID, now, c.cfg.HoldPickupWindow); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		slog.Info("expired stale holds", "book_id", bookID, "count", expired)
	}
	return expired, nil
}

// reindexBook renumbers a book's active holds to 1..N. Runs entirely
// inside the caller's transaction, under the book row lock.
func reindexBook(ctx context.Context, tx shared.Tx, bookID uuid.UUID) error {
	active, err := tx.Holds().FindActiveByBook(ctx, bookID)
	if err != nil {
		return translateRepoErr(err, errs.ErrBookNotFound)
	}

	changed, err := hold.Reindex(active)
	if err != nil {
		return err
	}
	if len(changed) == 0 {
		return nil
	}

	if err := tx.Holds().UpdatePositions(ctx, changed); err != nil {
		return translateRepoErr(err, errs.ErrHoldNotFound)
	}
	return nil
}

// fulfillNextInTx promotes the lowest-positioned active hold to ready and
// enqueues the pickup notification. The caller must hold the book row
// lock. Returns nil when the queue is empty.
func fulfillNextInTx(ctx context.Context, tx shared.Tx, bookID uuid.UUID, now time.Time, pickupWindow time.Duration) (*hold.Hold, error) {
	active, err := tx.Holds().FindActiveByBook(ctx, bookID)
	if err != nil {
		return nil, translateRepoErr(err, errs.ErrBookNotFound)
	}

	next := hold.SelectNext(active)
	if next == nil {
		return nil, nil
	}

	if err := next.MarkReady(now, pickupWindow); err != nil {
		return nil, err
	}
	if err := tx.Holds().UpdateState(ctx, next); err != nil {
		return nil, translateRepoErr(err, errs.ErrHoldNotFound)
	}

	remaining := make([]*hold.Hold, 0, len(active)-1)
	for _, h := range active {
		if h.ID() != next.ID() {
			remaining = append(remaining, h)
		}
	}
	changed, err := hold.Reindex(remaining)
	if err != nil {
		return nil, err
	}
	if len(changed) > 0 {
		if err := tx.Holds().UpdatePositions(ctx, changed); err != nil {
			return nil, translateRepoErr(err, errs.ErrHoldNotFound)
		}
	}

	payload, err := json.Marshal(map[string]any{
		"hold_id":    next.ID(),
		"book_id":    bookID,
		"subject_id": next.SubjectID(),
		"expires_at": next.ExpiresAt(),
	})
	if err != nil {
		return nil, err
	}
	if err := tx.Notifications().CreateJob(ctx, "email", "hold_ready", payload, now); err != nil {
		return nil, translateRepoErr(err, errs.ErrStoreUnavailable)
	}

	return next, nil
}
