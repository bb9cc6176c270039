package shared

import (
	"context"
	"time"

	"library-circulation/internal/domain/book"
	"library-circulation/internal/domain/hold"
	"library-circulation/internal/domain/loan"
	"library-circulation/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Books() BookRepository
	Loans() LoanRepository
	Holds() HoldRepository
	Sequences() SequenceRepository
	Notifications() NotificationRepository
	DB() db.DBTX
}

// BookRepository is the inventory ledger plus catalog persistence.
// ReserveCopy and ReleaseCopy are single conditional statements; they are
// the only paths that mutate copy counts, and only the loan state machine
// decides when to call them.
type BookRepository interface {
	Create(ctx context.Context, b *book.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error)
	// LockByID takes the per-book row lock that serializes hold-queue
	// mutations for the transaction's lifetime.
	LockByID(ctx context.Context, id uuid.UUID) error
	ReserveCopy(ctx context.Context, id uuid.UUID) error
	ReleaseCopy(ctx context.Context, id uuid.UUID) error
}

type LoanRepository interface {
	Create(ctx context.Context, l *loan.Loan) error
	FindByID(ctx context.Context, id uuid.UUID) (*loan.Loan, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*loan.Loan, error)
	Update(ctx context.Context, l *loan.Loan) error
	// LockSubject serializes loan creation per subject (advisory lock) so
	// the borrow cap cannot be raced past.
	LockSubject(ctx context.Context, subjectID uuid.UUID) error
	CountOpenBorrowsBySubject(ctx context.Context, subjectID uuid.UUID) (int64, error)
	CountActiveBorrowsByBook(ctx context.Context, bookID uuid.UUID) (int64, error)
	ExistsOpenBySubjectAndBook(ctx context.Context, subjectID, bookID uuid.UUID) (bool, error)
}

type HoldRepository interface {
	Create(ctx context.Context, h *hold.Hold) error
	FindByID(ctx context.Context, id uuid.UUID) (*hold.Hold, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*hold.Hold, error)
	FindActiveByBook(ctx context.Context, bookID uuid.UUID) ([]*hold.Hold, error)
	FindOpenByBook(ctx context.Context, bookID uuid.UUID) ([]*hold.Hold, error)
	CountActiveByBook(ctx context.Context, bookID uuid.UUID) (int64, error)
	ExistsOpenBySubjectAndBook(ctx context.Context, subjectID, bookID uuid.UUID) (bool, error)
	UpdateState(ctx context.Context, h *hold.Hold) error
	// UpdatePositions must apply the renumbering in ascending target order
	// within the surrounding transaction.
	UpdatePositions(ctx context.Context, holds []*hold.Hold) error
	// FindStaleBookIDs lists books that have at least one open hold past
	// its expiry.
	FindStaleBookIDs(ctx context.Context, now time.Time, limit int32) ([]uuid.UUID, error)
}

// SequenceRepository hands out the next value of a named counter via one
// atomic increment. There is no read-then-write variant on purpose.
type SequenceRepository interface {
	NextValue(ctx context.Context, counterName string) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

// NotificationJob is a claimed outbox row.
type NotificationJob struct {
	ID      uuid.UUID
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

// OutboxRepository is the worker-side view of notification jobs; claiming
// uses FOR UPDATE SKIP LOCKED so concurrent workers never double-send.
type OutboxRepository interface {
	ClaimDue(ctx context.Context, now time.Time, limit int32) ([]NotificationJob, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, cause string, retryAt time.Time) error
}

// NotificationDispatcher is the external delivery port. Best effort: the
// core consumes no result beyond the error, which is logged and dropped.
type NotificationDispatcher interface {
	Notify(ctx context.Context, subjectID uuid.UUID, template string, context map[string]any) error
}

// IdentityProvider resolves display data for notification context only;
// the core never authenticates.
type IdentityProvider interface {
	ResolveSubject(ctx context.Context, subjectID uuid.UUID) (SubjectInfo, error)
}

type SubjectInfo struct {
	DisplayName string
}
