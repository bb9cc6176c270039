package commands

import (
	"context"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/pkg/clock"
	"library-circulation/internal/pkg/errs"
	"library-circulation/internal/usecase/queries"
	"library-circulation/internal/usecase/shared"
)

// RegisterBookInput carries the catalog metadata supplied by the (external)
// cataloging surface. The core validates none of the bibliographic fields
// beyond what its own invariants need.
type RegisterBookInput struct {
	Title       string
	CallNumber  string
	TotalCopies int32
}

type CatalogCommands interface {
	RegisterBook(ctx context.Context, in RegisterBookInput) (*queries.BookView, error)
}

type catalogCommandsImpl struct {
	uow         shared.UnitOfWork
	bookQueries queries.BookQueries
	clock       clock.Clock
}

func NewCatalogCommands(uow shared.UnitOfWork, bookQueries queries.BookQueries, clk clock.Clock) CatalogCommands {
	return &catalogCommandsImpl{
		uow:         uow,
		bookQueries: bookQueries,
		clock:       clk,
	}
}

// RegisterBook creates a catalog entry and assigns its accession number.
// The sequence increment and the book insert share one transaction: if the
// insert fails the increment rolls back with it, keeping the year's
// sequence gapless.
func (c *catalogCommandsImpl) RegisterBook(ctx context.Context, in RegisterBookInput) (*queries.BookView, error) {
	now := c.clock.Now()

	var created *book.Book
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		seq, err := tx.Sequences().NextValue(ctx, book.CounterName(now.Year()))
		if err != nil {
			return translateRepoErr(err, errs.ErrStoreUnavailable)
		}

		accession, err := book.NewAccessionNumber(now.Year(), seq)
		if err != nil {
			return errs.Mark(err, errs.ErrInvariantViolation)
		}

		b, err := book.NewBook(accession, in.Title, in.CallNumber, in.TotalCopies, now)
		if err != nil {
			return err
		}

		if err := tx.Books().Create(ctx, b); err != nil {
			return translateRepoErr(err, errs.ErrBookNotFound)
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.bookQueries.GetByID(ctx, created.ID())
}
