package book

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidAccessionYear = errors.New("accession year out of range")
	ErrInvalidAccessionSeq  = errors.New("accession sequence must be positive")
	ErrMalformedAccession   = errors.New("malformed accession number")
)

// AccessionNumber is the year-scoped sequential identifier assigned on
// catalog entry, rendered as YEAR-NNNN (zero-padded to four digits, wider
// when the sequence outgrows them).
type AccessionNumber struct {
	year int
	seq  int64
}

func NewAccessionNumber(year int, seq int64) (AccessionNumber, error) {
	if year < 1900 || year > 9999 {
		return AccessionNumber{}, ErrInvalidAccessionYear
	}
	if seq <= 0 {
		return AccessionNumber{}, ErrInvalidAccessionSeq
	}
	return AccessionNumber{year: year, seq: seq}, nil
}

func ParseAccessionNumber(s string) (AccessionNumber, error) {
	yearPart, seqPart, found := strings.Cut(s, "-")
	if !found {
		return AccessionNumber{}, ErrMalformedAccession
	}

	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return AccessionNumber{}, ErrMalformedAccession
	}
	seq, err := strconv.ParseInt(seqPart, 10, 64)
	if err != nil {
		return AccessionNumber{}, ErrMalformedAccession
	}

	return NewAccessionNumber(year, seq)
}

func (a AccessionNumber) Year() int   { return a.year }
func (a AccessionNumber) Seq() int64  { return a.seq }
func (a AccessionNumber) IsZero() bool { return a.year == 0 }

func (a AccessionNumber) String() string {
	return fmt.Sprintf("%d-%04d", a.year, a.seq)
}

// CounterName names the sequence counter backing this accession's scope,
// e.g. "accession-2026". A new year starts a fresh counter without manual
// intervention.
func CounterName(year int) string {
	return fmt.Sprintf("accession-%d", year)
}
