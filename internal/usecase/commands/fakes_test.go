//go:build unit

package commands_test

import (
	"context"
	"sort"
	"time"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/hold"
	"library-circulation/internal/domain/loan"
	"library-circulation/internal/infra"
	"library-circulation/internal/infra/db"
	"library-circulation/internal/usecase/queries"
	"library-circulation/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the persistence layer. It mirrors
// the repository contracts closely enough for command-flow tests: the same
// error kinds, the same conditional-update semantics, no SQL.
type fakeStore struct {
	books     map[uuid.UUID]*bookRec
	loans     map[uuid.UUID]*loan.Loan
	holds     map[uuid.UUID]*hold.Hold
	sequences map[string]int64
	jobs      []fakeJob
}

type bookRec struct {
	book      *book.Book
	total     int32
	available int32
}

type fakeJob struct {
	kind    string
	topic   string
	payload []byte
	runAt   time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		books:     make(map[uuid.UUID]*bookRec),
		loans:     make(map[uuid.UUID]*loan.Loan),
		holds:     make(map[uuid.UUID]*hold.Hold),
		sequences: make(map[string]int64),
	}
}

func (s *fakeStore) addBook(total, available int32) uuid.UUID {
	accession, _ := book.NewAccessionNumber(2026, int64(len(s.books)+1))
	b, _ := book.NewBook(accession, "Test Book", "000 TST", total, time.Now())
	s.books[b.ID()] = &bookRec{book: b, total: total, available: available}
	return b.ID()
}

// --- UnitOfWork ---

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Books() shared.BookRepository                 { return &fakeBookRepo{t.store} }
func (t *fakeTx) Loans() shared.LoanRepository                 { return &fakeLoanRepo{t.store} }
func (t *fakeTx) Holds() shared.HoldRepository                 { return &fakeHoldRepo{t.store} }
func (t *fakeTx) Sequences() shared.SequenceRepository         { return &fakeSequenceRepo{t.store} }
func (t *fakeTx) Notifications() shared.NotificationRepository { return &fakeNotificationRepo{t.store} }
func (t *fakeTx) DB() db.DBTX                                  { return nil }

// --- Books ---

type fakeBookRepo struct{ store *fakeStore }

func (r *fakeBookRepo) Create(_ context.Context, b *book.Book) error {
	r.store.books[b.ID()] = &bookRec{book: b, total: b.TotalCopies(), available: b.AvailableCopies()}
	return nil
}

func (r *fakeBookRepo) FindByID(_ context.Context, id uuid.UUID) (*book.Book, error) {
	rec, ok := r.store.books[id]
	if !ok {
		return nil, infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return book.ReconstructBook(
		rec.book.ID(), rec.book.AccessionNumber(), rec.book.Title(), rec.book.CallNumber(),
		rec.total, rec.available, rec.book.CreatedAt(), rec.book.UpdatedAt(),
	), nil
}

func (r *fakeBookRepo) LockByID(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.books[id]; !ok {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *fakeBookRepo) ReserveCopy(_ context.Context, id uuid.UUID) error {
	rec, ok := r.store.books[id]
	if !ok {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	if rec.available <= 0 {
		return infra.WrapRepoErr("no copies available", nil, infra.KindOutOfStock)
	}
	rec.available--
	return nil
}

func (r *fakeBookRepo) ReleaseCopy(_ context.Context, id uuid.UUID) error {
	rec, ok := r.store.books[id]
	if !ok {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	if rec.available >= rec.total {
		return infra.WrapRepoErr("release would exceed total copies", nil, infra.KindInvariantViolated)
	}
	rec.available++
	return nil
}

// --- Loans ---

type fakeLoanRepo struct{ store *fakeStore }

func (r *fakeLoanRepo) Create(_ context.Context, l *loan.Loan) error {
	r.store.loans[l.ID()] = l
	return nil
}

func (r *fakeLoanRepo) FindByID(_ context.Context, id uuid.UUID) (*loan.Loan, error) {
	l, ok := r.store.loans[id]
	if !ok {
		return nil, infra.WrapRepoErr("loan not found", nil, infra.KindNotFound)
	}
	return l, nil
}

func (r *fakeLoanRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeLoanRepo) Update(_ context.Context, l *loan.Loan) error {
	if _, ok := r.store.loans[l.ID()]; !ok {
		return infra.WrapRepoErr("loan not found", nil, infra.KindNotFound)
	}
	r.store.loans[l.ID()] = l
	return nil
}

func (r *fakeLoanRepo) LockSubject(_ context.Context, _ uuid.UUID) error { return nil }

func (r *fakeLoanRepo) CountOpenBorrowsBySubject(_ context.Context, subjectID uuid.UUID) (int64, error) {
	var count int64
	for _, l := range r.store.loans {
		if l.SubjectID() == subjectID && l.Kind() == loan.KindBorrow && l.Status().IsOpen() {
			count++
		}
	}
	return count, nil
}

func (r *fakeLoanRepo) CountActiveBorrowsByBook(_ context.Context, bookID uuid.UUID) (int64, error) {
	var count int64
	for _, l := range r.store.loans {
		if l.BookID() == bookID && l.Kind() == loan.KindBorrow && l.Status() == loan.StatusActive {
			count++
		}
	}
	return count, nil
}

func (r *fakeLoanRepo) ExistsOpenBySubjectAndBook(_ context.Context, subjectID, bookID uuid.UUID) (bool, error) {
	for _, l := range r.store.loans {
		if l.SubjectID() == subjectID && l.BookID() == bookID && l.Status().IsOpen() {
			return true, nil
		}
	}
	return false, nil
}

// --- Holds ---

type fakeHoldRepo struct{ store *fakeStore }

func (r *fakeHoldRepo) Create(_ context.Context, h *hold.Hold) error {
	r.store.holds[h.ID()] = h
	return nil
}

func (r *fakeHoldRepo) FindByID(_ context.Context, id uuid.UUID) (*hold.Hold, error) {
	h, ok := r.store.holds[id]
	if !ok {
		return nil, infra.WrapRepoErr("hold not found", nil, infra.KindNotFound)
	}
	return h, nil
}

func (r *fakeHoldRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*hold.Hold, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeHoldRepo) FindActiveByBook(_ context.Context, bookID uuid.UUID) ([]*hold.Hold, error) {
	return r.findByBook(bookID, func(h *hold.Hold) bool { return h.Status() == hold.StatusActive }), nil
}

func (r *fakeHoldRepo) FindOpenByBook(_ context.Context, bookID uuid.UUID) ([]*hold.Hold, error) {
	return r.findByBook(bookID, func(h *hold.Hold) bool { return h.Status().IsOpen() }), nil
}

func (r *fakeHoldRepo) findByBook(bookID uuid.UUID, keep func(*hold.Hold) bool) []*hold.Hold {
	var out []*hold.Hold
	for _, h := range r.store.holds {
		if h.BookID() == bookID && keep(h) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlacedAt().Equal(out[j].PlacedAt()) {
			return out[i].ID().String() < out[j].ID().String()
		}
		return out[i].PlacedAt().Before(out[j].PlacedAt())
	})
	return out
}

func (r *fakeHoldRepo) CountActiveByBook(_ context.Context, bookID uuid.UUID) (int64, error) {
	var count int64
	for _, h := range r.store.holds {
		if h.BookID() == bookID && h.Status() == hold.StatusActive {
			count++
		}
	}
	return count, nil
}

func (r *fakeHoldRepo) ExistsOpenBySubjectAndBook(_ context.Context, subjectID, bookID uuid.UUID) (bool, error) {
	for _, h := range r.store.holds {
		if h.SubjectID() == subjectID && h.BookID() == bookID && h.Status().IsOpen() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeHoldRepo) UpdateState(_ context.Context, h *hold.Hold) error {
	if _, ok := r.store.holds[h.ID()]; !ok {
		return infra.WrapRepoErr("hold not found", nil, infra.KindNotFound)
	}
	r.store.holds[h.ID()] = h
	return nil
}

func (r *fakeHoldRepo) UpdatePositions(_ context.Context, holds []*hold.Hold) error {
	for _, h := range holds {
		if _, ok := r.store.holds[h.ID()]; !ok {
			return infra.WrapRepoErr("hold disappeared during reindex", nil, infra.KindInvariantViolated)
		}
		r.store.holds[h.ID()] = h
	}
	return nil
}

func (r *fakeHoldRepo) FindStaleBookIDs(_ context.Context, now time.Time, _ int32) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, h := range r.store.holds {
		if h.IsStale(now) && !seen[h.BookID()] {
			seen[h.BookID()] = true
			out = append(out, h.BookID())
		}
	}
	return out, nil
}

// --- Sequences ---

type fakeSequenceRepo struct{ store *fakeStore }

func (r *fakeSequenceRepo) NextValue(_ context.Context, counterName string) (int64, error) {
	r.store.sequences[counterName]++
	return r.store.sequences[counterName], nil
}

// --- Notifications ---

type fakeNotificationRepo struct{ store *fakeStore }

func (r *fakeNotificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	r.store.jobs = append(r.store.jobs, fakeJob{kind: kind, topic: topic, payload: payload, runAt: runAt})
	return nil
}

// --- Query fakes backed by the same store ---

type fakeBookQueries struct{ store *fakeStore }

func (q *fakeBookQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.BookView, error) {
	rec, ok := q.store.books[id]
	if !ok {
		return nil, infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	status := book.StatusAvailable
	if rec.available == 0 {
		status = book.StatusUnavailable
	}
	return &queries.BookView{
		ID:              rec.book.ID(),
		AccessionNumber: rec.book.AccessionNumber().String(),
		CallNumber:      rec.book.CallNumber(),
		Title:           rec.book.Title(),
		TotalCopies:     rec.total,
		AvailableCopies: rec.available,
		Status:          status.String(),
	}, nil
}

func (q *fakeBookQueries) GetByAccession(ctx context.Context, accession string) (*queries.BookView, error) {
	for id, rec := range q.store.books {
		if rec.book.AccessionNumber().String() == accession {
			return q.GetByID(ctx, id)
		}
	}
	return nil, infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
}

type fakeLoanQueries struct{ store *fakeStore }

func (q *fakeLoanQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.LoanView, error) {
	l, ok := q.store.loans[id]
	if !ok {
		return nil, infra.WrapRepoErr("loan not found", nil, infra.KindNotFound)
	}
	return &queries.LoanView{
		ID:              l.ID(),
		BookID:          l.BookID(),
		SubjectID:       l.SubjectID(),
		Kind:            l.Kind().String(),
		Status:          l.Status().String(),
		RequestedAt:     l.RequestedAt(),
		DueAt:           l.DueAt(),
		CompletedAt:     l.CompletedAt(),
		Approver:        l.Approver(),
		RejectionReason: l.RejectionReason(),
	}, nil
}

func (q *fakeLoanQueries) ListBySubject(_ context.Context, subjectID uuid.UUID, _ int) ([]*queries.LoanView, error) {
	var out []*queries.LoanView
	for id, l := range q.store.loans {
		if l.SubjectID() == subjectID {
			view, _ := q.GetByID(context.Background(), id)
			out = append(out, view)
		}
	}
	return out, nil
}

type fakeHoldQueries struct{ store *fakeStore }

func (q *fakeHoldQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.HoldView, error) {
	h, ok := q.store.holds[id]
	if !ok {
		return nil, infra.WrapRepoErr("hold not found", nil, infra.KindNotFound)
	}
	return &queries.HoldView{
		ID:        h.ID(),
		BookID:    h.BookID(),
		SubjectID: h.SubjectID(),
		Position:  h.Position(),
		Status:    h.Status().String(),
		PlacedAt:  h.PlacedAt(),
		ExpiresAt: h.ExpiresAt(),
		ReadyAt:   h.ReadyAt(),
	}, nil
}

func (q *fakeHoldQueries) ListActiveByBook(_ context.Context, bookID uuid.UUID) ([]*queries.HoldView, error) {
	repo := &fakeHoldRepo{q.store}
	active, _ := repo.FindActiveByBook(context.Background(), bookID)
	out := make([]*queries.HoldView, 0, len(active))
	for _, h := range active {
		view, _ := q.GetByID(context.Background(), h.ID())
		out = append(out, view)
	}
	return out, nil
}
