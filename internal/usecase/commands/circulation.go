package commands

import (
	"context"
	"log/slog"
	"time"

	"library-circulation/internal/domain/loan"
	"library-circulation/internal/pkg/clock"
	"library-circulation/internal/pkg/config"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/queries"
	"library-circulation/internal/usecase/shared"

	"github.com/google/uuid"
)

type CirculationCommands interface {
	BorrowDirect(ctx context.Context, bookID, subjectID uuid.UUID) (*queries.LoanView, error)
	RequestBorrow(ctx context.Context, bookID, subjectID uuid.UUID) (*queries.LoanView, error)
	ApproveBorrow(ctx context.Context, loanID, approverID uuid.UUID) (*queries.LoanView, error)
	RejectBorrow(ctx context.Context, loanID, approverID uuid.UUID, reason string) error
	ReturnBook(ctx context.Context, loanID uuid.UUID) error
	RequestReservation(ctx context.Context, bookID, subjectID uuid.UUID) (*queries.LoanView, error)
	ApproveReservation(ctx context.Context, loanID, approverID uuid.UUID) (*queries.LoanView, error)
	RejectReservation(ctx context.Context, loanID, approverID uuid.UUID, reason string) error
	Cancel(ctx context.Context, loanID uuid.UUID) error
}

type circulationCommandsImpl struct {
	uow         shared.UnitOfWork
	loanQueries queries.LoanQueries
	clock       clock.Clock
	cfg         config.CirculationConfig
}

func NewCirculationCommands(
	uow shared.UnitOfWork,
	loanQueries queries.LoanQueries,
	clk clock.Clock,
	cfg config.CirculationConfig,
) CirculationCommands {
	return &circulationCommandsImpl{
		uow:         uow,
		loanQueries: loanQueries,
		clock:       clk,
		cfg:         cfg,
	}
}

// BorrowDirect is the self-serve path: the loan starts active and a copy is
// reserved in the same transaction. The subject advisory lock serializes
// concurrent borrows per subject, which is what makes the cap check safe.
func (c *circulationCommandsImpl) BorrowDirect(ctx context.Context, bookID, subjectID uuid.UUID) (*queries.LoanView, error) {
	now := c.clock.Now()

	var created *loan.Loan
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := c.guardNewBorrow(ctx, tx, bookID, subjectID); err != nil {
			return err
		}

		if err := tx.Books().ReserveCopy(ctx, bookID); err != nil {
			return translateRepoErr(err, errs.ErrBookNotFound)
		}

		l := loan.NewDirectBorrow(bookID, subjectID, now, c.cfg.LoanPeriod)
		if err := tx.Loans().Create(ctx, l); err != nil {
			return translateRepoErr(err, errs.ErrBookNotFound)
		}

		created = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.loanQueries.GetByID(ctx, created.ID())
}

// RequestBorrow files a pending borrow for staff approval. The cap counts
// pending requests too, so approval never has to re-check it: activating a
// pending loan keeps the open count unchanged.
func (c *circulationCommandsImpl) RequestBorrow(ctx context.Context, bookID, subjectID uuid.UUID) (*queries.LoanView, error) {
	return c.createRequest(ctx, bookID, subjectID, loan.KindBorrow)
}

// RequestReservation files a pending reservation. Reservations never touch
// stock, so neither the cap nor availability applies here.
func (c *circulationCommandsImpl) RequestReservation(ctx context.Context, bookID, subjectID uuid.UUID) (*queries.LoanView, error) {
	return c.createRequest(ctx, bookID, subjectID, loan.KindReserve)
}

func (c *circulationCommandsImpl) createRequest(ctx context.Context, bookID, subjectID uuid.UUID, kind loan.Kind) (*queries.LoanView, error) {
	now := c.clock.Now()

	var created *loan.Loan
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if kind == loan.KindBorrow {
			if err := c.guardNewBorrow(ctx, tx, bookID, subjectID); err != nil {
				return err
			}
		} else {
			if err := guardNoOpenLoan(ctx, tx, bookID, subjectID); err != nil {
				return err
			}
			if _, err := tx.Books().FindByID(ctx, bookID); err != nil {
				return translateRepoErr(err, errs.ErrBookNotFound)
			}
		}

		l, err := loan.NewRequest(bookID, subjectID, kind, now)
		if err != nil {
			return err
		}
		if err := tx.Loans().Create(ctx, l); err != nil {
			return translateRepoErr(err, errs.ErrBookNotFound)
		}

		created = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.loanQueries.GetByID(ctx, created.ID())
}

// guardNewBorrow runs the checks every new borrow loan must pass, under the
// subject advisory lock: the book exists and has a copy to give out
// (pre-check only; ReserveCopy is the authoritative one), the subject is
// under the cap, has no open loan on this book, and is not also waiting in
// its hold queue.
func (c *circulationCommandsImpl) guardNewBorrow(ctx context.Context, tx shared.Tx, bookID, subjectID uuid.UUID) error {
	if err := tx.Loans().LockSubject(ctx, subjectID); err != nil {
		return translateRepoErr(err, errs.ErrBookNotFound)
	}

	if _, err := tx.Books().FindByID(ctx, bookID); err != nil {
		return translateRepoErr(err, errs.ErrBookNotFound)
	}

	open, err := tx.Loans().CountOpenBorrowsBySubject(ctx, subjectID)
	if err != nil {
		return translateRepoErr(err, errs.ErrBookNotFound)
	}
	if open >= int64(c.cfg.MaxActiveLoans) {
		return errs.ErrBorrowLimitExceeded
	}

	if err := guardNoOpenLoan(ctx, tx, bookID, subjectID); err != nil {
		return err
	}

	hasHold, err := tx.Holds().ExistsOpenBySubjectAndBook(ctx, subjectID, bookID)
	if err != nil {
		return translateRepoErr(err, errs.ErrBookNotFound)
	}
	if hasHold {
		return errs.ErrHoldBorrowExclusion
	}
	return nil
}

func guardNoOpenLoan(ctx context.Context, tx shared.Tx, bookID, subjectID uuid.UUID) error {
	exists, err := tx.Loans().ExistsOpenBySubjectAndBook(ctx, subjectID, bookID)
	if err != nil {
		return translateRepoErr(err, errs.ErrBookNotFound)
	}
	if exists {
		return errs.ErrDuplicateLoan
	}
	return nil
}

// ApproveBorrow activates a pending borrow. Reserving the copy and flipping
// the status commit or roll back together.
func (c *circulationCommandsImpl) ApproveBorrow(ctx context.Context, loanID, approverID uuid.UUID) (*queries.LoanView, error) {
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Loans().FindByIDForUpdate(ctx, loanID)
		if err != nil {
			return translateRepoErr(err, errs.ErrLoanNotFound)
		}

		effect, err := l.Activate(approverID, now, c.cfg.LoanPeriod)
		if err != nil {
			return err
		}
		if err := applyStockEffect(ctx, tx, effect, l.BookID()); err != nil {
			return err
		}
		return translateRepoErr(tx.Loans().Update(ctx, l), errs.ErrLoanNotFound)
	})
	if err != nil {
		return nil, err
	}

	return c.loanQueries.GetByID(ctx, loanID)
}

// ApproveReservation confirms a pending reservation. The book must not be
// in another subject's hands: an active borrow means no copy can be set
// aside for pickup.
func (c *circulationCommandsImpl) ApproveReservation(ctx context.Context, loanID, approverID uuid.UUID) (*queries.LoanView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Loans().FindByIDForUpdate(ctx, loanID)
		if err != nil {
			return translateRepoErr(err, errs.ErrLoanNotFound)
		}

		active, err := tx.Loans().CountActiveBorrowsByBook(ctx, l.BookID())
		if err != nil {
			return translateRepoErr(err, errs.ErrLoanNotFound)
		}
		if active > 0 {
			return errs.ErrBookAlreadyHeld
		}

		effect, err := l.ApproveReservation(approverID)
		if err != nil {
			return err
		}
		if err := applyStockEffect(ctx, tx, effect, l.BookID()); err != nil {
			return err
		}
		return translateRepoErr(tx.Loans().Update(ctx, l), errs.ErrLoanNotFound)
	})
	if err != nil {
		return nil, err
	}

	return c.loanQueries.GetByID(ctx, loanID)
}

func (c *circulationCommandsImpl) RejectBorrow(ctx context.Context, loanID, approverID uuid.UUID, reason string) error {
	return c.reject(ctx, loanID, approverID, reason, loan.KindBorrow)
}

func (c *circulationCommandsImpl) RejectReservation(ctx context.Context, loanID, approverID uuid.UUID, reason string) error {
	return c.reject(ctx, loanID, approverID, reason, loan.KindReserve)
}

func (c *circulationCommandsImpl) reject(ctx context.Context, loanID, approverID uuid.UUID, reason string, kind loan.Kind) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Loans().FindByIDForUpdate(ctx, loanID)
		if err != nil {
			return translateRepoErr(err, errs.ErrLoanNotFound)
		}
		if l.Kind() != kind {
			return errs.ErrInvalidTransition
		}

		if _, err := l.Reject(approverID, reason); err != nil {
			return err
		}
		return translateRepoErr(tx.Loans().Update(ctx, l), errs.ErrLoanNotFound)
	})
	if err != nil {
		return err
	}

	slog.Info("loan rejected", "loan_id", loanID, "approver_id", approverID, "reason", reason)
	return nil
}

// ReturnBook completes an active borrow or an approved reservation. When a
// copy comes back, the freed stock and the promotion of the next hold
// commit atomically; the pickup notification rides the outbox, so the
// release is durable before anything is sent.
func (c *circulationCommandsImpl) ReturnBook(ctx context.Context, loanID uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Loans().FindByIDForUpdate(ctx, loanID)
		if err != nil {
			return translateRepoErr(err, errs.ErrLoanNotFound)
		}

		effect, err := l.Complete(now)
		if err != nil {
			return err
		}
		if err := tx.Loans().Update(ctx, l); err != nil {
			return translateRepoErr(err, errs.ErrLoanNotFound)
		}

		return c.applyReleaseAndFulfill(ctx, tx, effect, l.BookID(), now)
	})
}

// Cancel withdraws a pending or active loan. An active borrow being
// cancelled returns its copy, which can promote the next hold.
func (c *circulationCommandsImpl) Cancel(ctx context.Context, loanID uuid.UUID) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Loans().FindByIDForUpdate(ctx, loanID)
		if err != nil {
			return translateRepoErr(err, errs.ErrLoanNotFound)
		}

		effect, err := l.Cancel(now)
		if err != nil {
			return err
		}
		if err := tx.Loans().Update(ctx, l); err != nil {
			return translateRepoErr(err, errs.ErrLoanNotFound)
		}

		return c.applyReleaseAndFulfill(ctx, tx, effect, l.BookID(), now)
	})
}

func applyStockEffect(ctx context.Context, tx shared.Tx, effect loan.StockEffect, bookID uuid.UUID) error {
	switch effect {
	case loan.EffectReserve:
		return translateRepoErr(tx.Books().ReserveCopy(ctx, bookID), errs.ErrBookNotFound)
	case loan.EffectRelease:
		return translateRepoErr(tx.Books().ReleaseCopy(ctx, bookID), errs.ErrBookNotFound)
	default:
		return nil
	}
}

// applyReleaseAndFulfill applies a completion's stock effect and, when a
// copy was freed, hands it to the hold queue. ReleaseCopy's row update
// already holds the book row lock fulfillment requires.
func (c *circulationCommandsImpl) applyReleaseAndFulfill(ctx context.Context, tx shared.Tx, effect loan.StockEffect, bookID uuid.UUID, now time.Time) error {
	if effect != loan.EffectRelease {
		return nil
	}
	if err := tx.Books().ReleaseCopy(ctx, bookID); err != nil {
		return translateRepoErr(err, errs.ErrBookNotFound)
	}
	_, err := fulfillNextInTx(ctx, tx, bookID, now, c.cfg.HoldPickupWindow)
	return err
}
