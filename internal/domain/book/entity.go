package book

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativeCopies   = errors.New("total copies cannot be negative")
	ErrStockOutOfBounds = errors.New("available copies out of bounds")
	ErrEmptyTitle       = errors.New("title cannot be empty")
)

// Book is the catalog aggregate the circulation core operates on.
// availableCopies and totalCopies are only ever mutated through the
// inventory ledger; the entity validates, it does not persist.
type Book struct {
	id              uuid.UUID
	accessionNumber AccessionNumber
	callNumber      string
	title           string
	totalCopies     int32
	availableCopies int32
	createdAt       time.Time
	updatedAt       time.Time
}

func NewBook(accession AccessionNumber, title, callNumber string, totalCopies int32, now time.Time) (*Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if totalCopies < 0 {
		return nil, ErrNegativeCopies
	}

	return &Book{
		id:              uuid.New(),
		accessionNumber: accession,
		callNumber:      strings.TrimSpace(callNumber),
		title:           title,
		totalCopies:     totalCopies,
		availableCopies: totalCopies,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructBook(
	id uuid.UUID,
	accession AccessionNumber,
	title, callNumber string,
	totalCopies, availableCopies int32,
	createdAt, updatedAt time.Time,
) *Book {
	return &Book{
		id:              id,
		accessionNumber: accession,
		callNumber:      callNumber,
		title:           title,
		totalCopies:     totalCopies,
		availableCopies: availableCopies,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ValidateStock checks 0 <= availableCopies <= totalCopies. A violation is
// a bug in a mutation path, never something to repair in place.
func (b *Book) ValidateStock() error {
	if b.availableCopies < 0 || b.availableCopies > b.totalCopies {
		return ErrStockOutOfBounds
	}
	return nil
}

func (b *Book) Status() Status {
	if b.availableCopies > 0 {
		return StatusAvailable
	}
	return StatusUnavailable
}

func (b *Book) HasAvailableCopy() bool {
	return b.availableCopies > 0
}

func (b *Book) ID() uuid.UUID                     { return b.id }
func (b *Book) AccessionNumber() AccessionNumber  { return b.accessionNumber }
func (b *Book) CallNumber() string                { return b.callNumber }
func (b *Book) Title() string                     { return b.title }
func (b *Book) TotalCopies() int32                { return b.totalCopies }
func (b *Book) AvailableCopies() int32            { return b.availableCopies }
func (b *Book) CreatedAt() time.Time              { return b.createdAt }
func (b *Book) UpdatedAt() time.Time              { return b.updatedAt }
